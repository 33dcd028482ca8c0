package table

import (
	"fmt"
	"strings"
)

// normalizeHeaders trims header cells, names blank ones after their position
// and makes duplicates unique.
func normalizeHeaders(raw []string) []string {
	headers := make([]string, len(raw))
	for i, header := range raw {
		if i == 0 {
			header = strings.TrimPrefix(header, "\ufeff")
		}
		header = strings.TrimSpace(header)
		if header == "" {
			header = generateColumnName(i)
		}
		headers[i] = header
	}
	return ValidateHeaders(headers)
}

// generateColumnName создает имя столбца по индексу
func generateColumnName(index int) string {
	return fmt.Sprintf("column_%d", index+1)
}

// ValidateHeaders проверяет и исправляет дубликаты в заголовках
func ValidateHeaders(headers []string) []string {
	seen := make(map[string]int)
	result := make([]string, len(headers))

	for i, header := range headers {
		originalHeader := header
		counter := 1

		for {
			if count, exists := seen[header]; exists {
				header = fmt.Sprintf("%s_%d", originalHeader, counter)
				counter++
			} else {
				seen[header] = count + 1
				break
			}
		}

		result[i] = header
	}

	return result
}
