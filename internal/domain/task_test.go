package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewTask(t *testing.T) {
	columnID := uuid.New()

	task, err := NewTask(columnID, "Fix bug", "")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if task.ID == uuid.Nil {
		t.Error("Expected non-nil task ID")
	}

	if task.Priority != PriorityLow {
		t.Errorf("Expected default priority LOW, got %s", task.Priority)
	}

	if task.Content != nil {
		t.Errorf("Expected nil content, got %v", task.Content)
	}

	if task.Position != 0 {
		t.Errorf("Expected zero position before insert, got %d", task.Position)
	}

	task, err = NewTask(columnID, "Ship release", PriorityHigh)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if task.Priority != PriorityHigh {
		t.Errorf("Expected priority HIGH, got %s", task.Priority)
	}

	if _, err = NewTask(columnID, "", PriorityLow); err != ErrTaskTitleEmpty {
		t.Errorf("Expected error %v, got %v", ErrTaskTitleEmpty, err)
	}

	if _, err = NewTask(uuid.Nil, "Fix bug", PriorityLow); err != ErrTaskColumnIDEmpty {
		t.Errorf("Expected error %v, got %v", ErrTaskColumnIDEmpty, err)
	}

	if _, err = NewTask(columnID, "Fix bug", TaskPriority("URGENT")); err != ErrInvalidPriority {
		t.Errorf("Expected error %v, got %v", ErrInvalidPriority, err)
	}
}

func TestTaskPriorityValid(t *testing.T) {
	for _, p := range []TaskPriority{PriorityLow, PriorityMedium, PriorityHigh} {
		if !p.Valid() {
			t.Errorf("Expected %s to be valid", p)
		}
	}

	for _, p := range []TaskPriority{"", "low", "CRITICAL"} {
		if p.Valid() {
			t.Errorf("Expected %q to be invalid", p)
		}
	}
}

func TestNewColumn(t *testing.T) {
	boardID := uuid.New()

	column, err := NewColumn(boardID, "Todo")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if column.BoardID != boardID {
		t.Errorf("Expected board %s, got %s", boardID, column.BoardID)
	}

	if column.Position != 0 {
		t.Errorf("Expected zero position before insert, got %d", column.Position)
	}

	if _, err = NewColumn(boardID, ""); err != ErrColumnTitleEmpty {
		t.Errorf("Expected error %v, got %v", ErrColumnTitleEmpty, err)
	}

	if _, err = NewColumn(uuid.Nil, "Todo"); err != ErrColumnBoardIDEmpty {
		t.Errorf("Expected error %v, got %v", ErrColumnBoardIDEmpty, err)
	}
}
