package store

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table and column names shared by the repositories.
const (
	tableProgress    = "question_progress"
	tableUnlocks     = "region_unlocks"
	tableAnswers     = "answer_events"
	tableLLMRequests = "llm_request_events"
	tableSequence    = "global_sequence"
)

var (
	// QuestionProgressColumns holds the scheduling fields of one question.
	QuestionProgressColumns = []*schema.Column{
		{Name: "question_id", Type: field.TypeString},
		{Name: "region_id", Type: field.TypeString},
		{Name: "interval", Type: field.TypeInt, Default: 0},
		{Name: "next_review", Type: field.TypeString},
		{Name: "mastered", Type: field.TypeInt, Default: 0}, // 0 or 1 on every driver
	}
	QuestionProgressTable = &schema.Table{
		Name:       tableProgress,
		Columns:    QuestionProgressColumns,
		PrimaryKey: []*schema.Column{QuestionProgressColumns[0]},
		Indexes: []*schema.Index{
			{Name: "questionprogress_region_id", Columns: []*schema.Column{QuestionProgressColumns[1]}},
		},
	}

	// RegionUnlocksColumns records unlocks that did not come from the
	// load-time threshold rule.
	RegionUnlocksColumns = []*schema.Column{
		{Name: "region_id", Type: field.TypeString},
		{Name: "unlocked_at", Type: field.TypeTime},
		{Name: "source", Type: field.TypeString},
	}
	RegionUnlocksTable = &schema.Table{
		Name:       tableUnlocks,
		Columns:    RegionUnlocksColumns,
		PrimaryKey: []*schema.Column{RegionUnlocksColumns[0]},
	}

	// AnswerEventsColumns is the append-only record of graded answers.
	AnswerEventsColumns = []*schema.Column{
		{Name: "sequence", Type: field.TypeInt64},
		{Name: "batch_id", Type: field.TypeString},
		{Name: "question_id", Type: field.TypeString},
		{Name: "region_id", Type: field.TypeString},
		{Name: "submitted", Type: field.TypeString, Size: 2048},
		{Name: "correct", Type: field.TypeBool},
		{Name: "interval_after", Type: field.TypeInt},
		{Name: "created_at", Type: field.TypeTime},
	}
	AnswerEventsTable = &schema.Table{
		Name:       tableAnswers,
		Columns:    AnswerEventsColumns,
		PrimaryKey: []*schema.Column{AnswerEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "answerevent_batch_id", Columns: []*schema.Column{AnswerEventsColumns[1]}},
			{Name: "answerevent_region_id", Columns: []*schema.Column{AnswerEventsColumns[3]}},
		},
	}

	// LLMRequestEventsColumns records each provider call made by catalog
	// generation.
	LLMRequestEventsColumns = []*schema.Column{
		{Name: "sequence", Type: field.TypeInt64},
		{Name: "provider", Type: field.TypeString},
		{Name: "model", Type: field.TypeString},
		{Name: "purpose", Type: field.TypeString},
		{Name: "input_tokens", Type: field.TypeInt},
		{Name: "output_tokens", Type: field.TypeInt},
		{Name: "latency_ms", Type: field.TypeInt64},
		{Name: "success", Type: field.TypeBool},
		{Name: "error_message", Type: field.TypeString, Size: 2048, Nullable: true},
		{Name: "created_at", Type: field.TypeTime},
	}
	LLMRequestEventsTable = &schema.Table{
		Name:       tableLLMRequests,
		Columns:    LLMRequestEventsColumns,
		PrimaryKey: []*schema.Column{LLMRequestEventsColumns[0]},
	}

	// GlobalSequenceColumns is the single-row counter ordering every event.
	GlobalSequenceColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt},
		{Name: "next_val", Type: field.TypeInt64, Default: 1},
	}
	GlobalSequenceTable = &schema.Table{
		Name:       tableSequence,
		Columns:    GlobalSequenceColumns,
		PrimaryKey: []*schema.Column{GlobalSequenceColumns[0]},
	}

	// Tables holds every table the store manages.
	Tables = []*schema.Table{
		QuestionProgressTable,
		RegionUnlocksTable,
		AnswerEventsTable,
		LLMRequestEventsTable,
		GlobalSequenceTable,
	}
)

// migrate creates or updates the tables and seeds the sequence row.
func (s *Store) migrate(ctx context.Context) error {
	m, err := schema.NewMigrate(s.drv)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	if err := m.Create(ctx, Tables...); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}

	query, args := sql.Dialect(s.dialect).
		Insert(tableSequence).
		Columns("id", "next_val").
		Values(1, 1).
		OnConflict(sql.ConflictColumns("id"), sql.DoNothing()).
		Query()
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("seed sequence: %w", err)
	}
	return nil
}
