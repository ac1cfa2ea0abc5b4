package broker

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ValidateMessage перевіряє текст повідомлення перед релеєм.
// Текст помилки йде клієнту як є.
func ValidateMessage(message string, maxLength int) error {
	if strings.TrimSpace(message) == "" {
		return errors.New("Message cannot be empty")
	}
	if utf8.RuneCountInString(message) > maxLength {
		return fmt.Errorf("Message too long (max %d characters)", maxLength)
	}
	return nil
}

// SanitizeMessage прибирає крайні пробіли. Решта санітизації лежить
// на презентаційному шарі.
func SanitizeMessage(message string) string {
	return strings.TrimSpace(message)
}
