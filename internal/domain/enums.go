package domain

type Column string

const (
	ColumnTodo  Column = "Todo"
	ColumnDoing Column = "Doing"
	ColumnDone  Column = "Done"
)

// Columns is the fixed left-to-right order of the board.
var Columns = []Column{ColumnTodo, ColumnDoing, ColumnDone}

// Valid reports whether c is one of the three board columns.
func (c Column) Valid() bool {
	switch c {
	case ColumnTodo, ColumnDoing, ColumnDone:
		return true
	}
	return false
}

// Index returns the board position of c, or -1 for an unknown column.
func (c Column) Index() int {
	for i, col := range Columns {
		if col == c {
			return i
		}
	}
	return -1
}

type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// Priorities lists priorities from most to least urgent.
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

// PriorityAll is the filter value that matches every priority.
const PriorityAll Priority = "All"

func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

type LogType string

const (
	LogCreated LogType = "created"
	LogEdited  LogType = "edited"
	LogMoved   LogType = "moved"
	LogDeleted LogType = "deleted"
)

func (t LogType) Valid() bool {
	switch t {
	case LogCreated, LogEdited, LogMoved, LogDeleted:
		return true
	}
	return false
}
