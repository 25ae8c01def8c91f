package models

import (
	"testing"
	"time"
)

func TestTaskOverdue(t *testing.T) {
	now := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)
	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)

	cases := []struct {
		name string
		task Task
		want bool
	}{
		{"pending past due", Task{Status: TaskPendente, DataVencimento: &past}, true},
		{"pending not yet due", Task{Status: TaskPendente, DataVencimento: &future}, false},
		{"completed past due", Task{Status: TaskConcluida, DataVencimento: &past}, false},
		{"no due date", Task{Status: TaskPendente}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.task.Overdue(now); got != c.want {
				t.Errorf("Overdue = %v, esperava %v", got, c.want)
			}
		})
	}
}
