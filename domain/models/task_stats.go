package models

// TaskCountRow is one group of the statistics query.
type TaskCountRow struct {
	Completed bool
	Priority  Priority
	Category  Category
	Count     int64
}

// TaskStats summarizes the whole collection.
type TaskStats struct {
	Total      int64
	Completed  int64
	Pending    int64
	ByPriority map[Priority]int64
	ByCategory map[Category]int64
}

// NewTaskStats returns empty stats with every enum member present.
func NewTaskStats() *TaskStats {
	stats := &TaskStats{
		ByPriority: make(map[Priority]int64, len(AllPriorities())),
		ByCategory: make(map[Category]int64, len(AllCategories())),
	}
	for _, p := range AllPriorities() {
		stats.ByPriority[p] = 0
	}
	for _, c := range AllCategories() {
		stats.ByCategory[c] = 0
	}
	return stats
}

// Add folds one group into the totals. Rows with values outside the
// enumerations still count toward Total but not toward any breakdown.
func (s *TaskStats) Add(row TaskCountRow) {
	s.Total += row.Count
	if row.Completed {
		s.Completed += row.Count
	}
	s.Pending = s.Total - s.Completed

	if row.Priority.Valid() {
		s.ByPriority[row.Priority] += row.Count
	}
	if row.Category.Valid() {
		s.ByCategory[row.Category] += row.Count
	}
}

// SummarizeTasks computes stats over an in-memory slice.
func SummarizeTasks(tasks []Task) *TaskStats {
	stats := NewTaskStats()
	for _, t := range tasks {
		stats.Add(TaskCountRow{Completed: t.Completed, Priority: t.Priority, Category: t.Category, Count: 1})
	}
	return stats
}
