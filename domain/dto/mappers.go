package dto

import "task-tracker-api/domain/models"

func TaskToTaskResponse(task *models.Task) *TaskResponse {
	return &TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Completed:   task.Completed,
		Priority:    task.Priority.String(),
		Category:    task.Category.String(),
		DueDate:     task.DueDate,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

func TasksToTaskResponses(tasks []*models.Task) []TaskResponse {
	responses := make([]TaskResponse, len(tasks))
	for i, task := range tasks {
		responses[i] = *TaskToTaskResponse(task)
	}
	return responses
}

func TaskStatsToResponse(stats *models.TaskStats) *TaskStatsResponse {
	resp := &TaskStatsResponse{
		Total:      stats.Total,
		Completed:  stats.Completed,
		Pending:    stats.Pending,
		ByPriority: make(map[string]int64, len(stats.ByPriority)),
		ByCategory: make(map[string]int64, len(stats.ByCategory)),
	}
	for _, p := range models.AllPriorities() {
		resp.ByPriority[p.String()] = stats.ByPriority[p]
	}
	for _, c := range models.AllCategories() {
		resp.ByCategory[c.String()] = stats.ByCategory[c]
	}
	return resp
}

// TaskStatsFromResponse rebuilds domain stats from their wire form (cache hits).
func TaskStatsFromResponse(resp *TaskStatsResponse) *models.TaskStats {
	stats := models.NewTaskStats()
	stats.Total = resp.Total
	stats.Completed = resp.Completed
	stats.Pending = resp.Pending
	for _, p := range models.AllPriorities() {
		stats.ByPriority[p] = resp.ByPriority[p.String()]
	}
	for _, c := range models.AllCategories() {
		stats.ByCategory[c] = resp.ByCategory[c.String()]
	}
	return stats
}
