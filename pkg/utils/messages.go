package utils

import "github.com/gofiber/fiber/v2"

const (
	LangEnglish = "en"
	LangTurkish = "tr"
)

var messages = map[string]map[string]string{
	LangEnglish: {
		ErrCodeValidation:    "Validation failed",
		ErrCodeNotFound:      "Task not found",
		ErrCodeBadRequest:    "The request could not be completed",
		ErrCodeInternalError: "Internal server error",
		ErrCodeUnavailable:   "Service unavailable",
		"route_not_found":    "Route not found",
		"task_deleted":       "Task deleted successfully",
	},
	LangTurkish: {
		ErrCodeValidation:    "Doğrulama başarısız",
		ErrCodeNotFound:      "Görev bulunamadı",
		ErrCodeBadRequest:    "İstek tamamlanamadı",
		ErrCodeInternalError: "Sunucu hatası",
		ErrCodeUnavailable:   "Servis kullanılamıyor",
		"route_not_found":    "Sayfa bulunamadı",
		"task_deleted":       "Görev başarıyla silindi",
	},
}

// Language picks the response language from Accept-Language, English by default.
func Language(c *fiber.Ctx) string {
	if c.AcceptsLanguages(LangEnglish, LangTurkish) == LangTurkish {
		return LangTurkish
	}
	return LangEnglish
}

// Message returns the localized text for key, falling back to English then to key.
func Message(c *fiber.Ctx, key string) string {
	if msg, ok := messages[Language(c)][key]; ok {
		return msg
	}
	if msg, ok := messages[LangEnglish][key]; ok {
		return msg
	}
	return key
}
