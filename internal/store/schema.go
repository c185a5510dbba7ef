package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table names.
const (
	phrasesTable     = "phrases"
	learnersTable    = "learners"
	llmEventsTable   = "llm_request_events"
	reviewEventTable = "review_events"
)

var (
	phraseColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "owner", Type: field.TypeString},
		{Name: "phrase_id", Type: field.TypeString, Size: 32},
		{Name: "text", Type: field.TypeString, Size: 2147483647},
		{Name: "translation", Type: field.TypeString, Default: ""},
		{Name: "leitner_stage", Type: field.TypeInt, Default: 0},
		{Name: "leitner_current", Type: field.TypeBool, Default: false},
		{Name: "mistakes", Type: field.TypeInt, Default: 0},
		{Name: "correct_answers", Type: field.TypeInt, Default: 0},
		{Name: "created_at", Type: field.TypeTime},
		{Name: "updated_at", Type: field.TypeTime},
	}
	phraseTable = &schema.Table{
		Name:       phrasesTable,
		Columns:    phraseColumns,
		PrimaryKey: []*schema.Column{phraseColumns[0]},
		Indexes: []*schema.Index{
			{Name: "phrase_owner_phrase_id", Unique: true, Columns: []*schema.Column{phraseColumns[1], phraseColumns[2]}},
			{Name: "phrase_owner_leitner_stage", Columns: []*schema.Column{phraseColumns[1], phraseColumns[5]}},
			{Name: "phrase_owner_leitner_current", Columns: []*schema.Column{phraseColumns[1], phraseColumns[6]}},
		},
	}

	learnerColumns = []*schema.Column{
		{Name: "name", Type: field.TypeString},
		{Name: "language", Type: field.TypeString},
		{Name: "level", Type: field.TypeString, Default: "A2"},
		{Name: "created_at", Type: field.TypeTime},
	}
	learnerTable = &schema.Table{
		Name:       learnersTable,
		Columns:    learnerColumns,
		PrimaryKey: []*schema.Column{learnerColumns[0]},
	}

	// Event tables share the sequence/timestamp prefix so they can be merged
	// into one ordered history.
	llmEventColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "provider", Type: field.TypeString},
		{Name: "model", Type: field.TypeString},
		{Name: "purpose", Type: field.TypeString},
		{Name: "input_tokens", Type: field.TypeInt, Default: 0},
		{Name: "output_tokens", Type: field.TypeInt, Default: 0},
		{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
		{Name: "success", Type: field.TypeBool},
		{Name: "error_message", Type: field.TypeString, Default: ""},
		{Name: "request_body", Type: field.TypeString, Size: 2147483647, Default: ""},
		{Name: "response_body", Type: field.TypeString, Size: 2147483647, Default: ""},
	}
	llmEventTable = &schema.Table{
		Name:       llmEventsTable,
		Columns:    llmEventColumns,
		PrimaryKey: []*schema.Column{llmEventColumns[0]},
		Indexes: []*schema.Index{
			{Name: "llmrequestevent_timestamp", Columns: []*schema.Column{llmEventColumns[2]}},
			{Name: "llmrequestevent_purpose", Columns: []*schema.Column{llmEventColumns[5]}},
		},
	}

	reviewEventColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "owner", Type: field.TypeString},
		{Name: "phrase_id", Type: field.TypeString},
		{Name: "correct", Type: field.TypeBool},
		{Name: "from_stage", Type: field.TypeInt},
		{Name: "to_stage", Type: field.TypeInt},
		{Name: "mastered", Type: field.TypeBool, Default: false},
	}
	reviewTable = &schema.Table{
		Name:       reviewEventTable,
		Columns:    reviewEventColumns,
		PrimaryKey: []*schema.Column{reviewEventColumns[0]},
		Indexes: []*schema.Index{
			{Name: "reviewevent_owner", Columns: []*schema.Column{reviewEventColumns[3]}},
			{Name: "reviewevent_timestamp", Columns: []*schema.Column{reviewEventColumns[2]}},
		},
	}

	tables = []*schema.Table{phraseTable, learnerTable, llmEventTable, reviewTable}
)
