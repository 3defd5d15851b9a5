package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"consolidator-backend/domain/core/entities"
)

// makeRecord builds a record for scoring and layout tests
func makeRecord(t *testing.T, id, fileName string, keywords, categories []string) *entities.Record {
	t.Helper()
	r, err := entities.NewRecord(id, fileName)
	require.NoError(t, err)
	r.AddKeywords(keywords...)
	r.AddCategories(categories...)
	return r
}

// makeBatch builds n records spread across the given categories
func makeBatch(t *testing.T, n int, categories ...string) []*entities.Record {
	t.Helper()
	records := make([]*entities.Record, 0, n)
	for i := 0; i < n; i++ {
		category := "uncategorized"
		if len(categories) > 0 {
			category = categories[i%len(categories)]
		}
		records = append(records, makeRecord(t,
			fmt.Sprintf("rec-%d", i),
			fmt.Sprintf("file-%d.md", i),
			[]string{fmt.Sprintf("kw-%d", i)},
			[]string{category},
		))
	}
	return records
}
