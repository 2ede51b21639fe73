package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"test-checker-backend/internal/certificate"
	"test-checker-backend/internal/models"
	"test-checker-backend/internal/ranking"
	"test-checker-backend/internal/report"
)

var (
	ErrNotCreator      = errors.New("only the test creator can finish it")
	ErrAlreadyFinished = errors.New("test is already finished")
)

// FinalizeOutcome is everything the chat layer needs after closing a test:
// the leaderboard, the written report and the inputs for an optional
// certificate batch.
type FinalizeOutcome struct {
	Test           *models.Test
	TeacherName    string
	Results        []ranking.ScoredResult
	Leaderboard    []ranking.Entry
	ReportPath     string
	ParticipantIDs []int64
}

// FinalizeService orchestrates closing a test: deactivation, ranking, the
// xlsx report and the certificate batch.
type FinalizeService struct {
	tests   *TestService
	results *ResultService
	users   *UserService
	batch   *certificate.Batch
	tempDir string
}

func NewFinalizeService(
	tests *TestService,
	results *ResultService,
	users *UserService,
	batch *certificate.Batch,
	tempDir string,
) *FinalizeService {
	return &FinalizeService{tests: tests, results: results, users: users, batch: batch, tempDir: tempDir}
}

// Finalize closes the test and produces the leaderboard and the participant
// report. The report file is the caller's to delete after delivery.
func (s *FinalizeService) Finalize(testID, requesterID int64) (*FinalizeOutcome, error) {
	test, err := s.tests.GetTest(testID)
	if err != nil {
		return nil, err
	}
	if test.CreatorID != requesterID {
		return nil, ErrNotCreator
	}
	if !test.Status {
		return nil, ErrAlreadyFinished
	}

	results, err := s.results.ResultsWithUsers(testID)
	if err != nil {
		return nil, err
	}
	participantIDs, err := s.results.ParticipantIDs(testID)
	if err != nil {
		return nil, err
	}

	if _, err := s.tests.Deactivate(testID); err != nil {
		return nil, err
	}

	teacherName := s.users.DisplayName(test.CreatorID, "Noma'lum")

	outcome := &FinalizeOutcome{
		Test:           test,
		TeacherName:    teacherName,
		Results:        results,
		Leaderboard:    ranking.Rank(results, ranking.TieBreakTimestamp),
		ParticipantIDs: participantIDs,
	}

	if len(results) > 0 {
		path, err := s.writeReport(test.Title, teacherName, results)
		if err != nil {
			return nil, err
		}
		outcome.ReportPath = path
	}
	return outcome, nil
}

func (s *FinalizeService) writeReport(title, teacherName string, results []ranking.ScoredResult) (string, error) {
	entries := ranking.Rank(ranking.DropUnnamed(results), ranking.TieBreakTimestamp)
	table := report.Build(title, teacherName, entries, time.Now())

	if err := os.MkdirAll(s.tempDir, 0o755); err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}
	path := filepath.Join(s.tempDir, fmt.Sprintf("hisobot_%s.xlsx", uuid.NewString()[:8]))
	if err := report.WriteXLSX(table, path); err != nil {
		return "", err
	}
	return path, nil
}

// Certificates renders one certificate per named participant and merges them
// into a PDF. Blank-name entries are dropped and the rest re-ranked with the
// percentage tie-break before rendering.
func (s *FinalizeService) Certificates(ctx context.Context, outcome *FinalizeOutcome, templateID int) (*certificate.BatchResult, error) {
	entries := ranking.Rank(ranking.DropUnnamed(outcome.Results), ranking.TieBreakPercent)
	return s.batch.Run(ctx, templateID, outcome.Test.Title, outcome.TeacherName, entries)
}
