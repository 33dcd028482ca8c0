package table

import "github.com/pivolan/account_analyzer/domain/models"

// Rename applies old/new name pairs to the data columns. Unknown old names
// are ignored and all pairs apply at once, so swapping two names works.
func Rename(t *models.Table, pairs []string) error {
	if len(pairs)%2 != 0 {
		return models.NewConfigurationError("--rename takes old/new name pairs, got %d values", len(pairs))
	}
	mapping := make(map[string]string, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		if _, exists := mapping[pairs[i]]; !exists {
			mapping[pairs[i]] = pairs[i+1]
		}
	}
	for _, c := range t.Columns {
		if newName, ok := mapping[c.Name]; ok {
			c.Name = newName
		}
	}
	return nil
}
