package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"ehpadacademy/internal/types"
)

// BudgetScenarios lists the static budget-simulation scenarios.
func (c *Client) BudgetScenarios(ctx context.Context) ([]types.BudgetScenario, error) {
	var scenarios []types.BudgetScenario
	if err := c.do(ctx, http.MethodGet, "/budget/scenarios", nil, nil, &scenarios); err != nil {
		return nil, err
	}
	return scenarios, nil
}

// StartBudgetSession opens a server-tracked attempt at a scenario. The
// scenario quiz itself is judged locally; the session only exists so the
// server can record that an attempt happened.
func (c *Client) StartBudgetSession(ctx context.Context, userID, scenarioID string) (*types.QuizSession, error) {
	q := url.Values{"user_id": {userID}, "scenario_id": {scenarioID}}
	var session types.QuizSession
	if err := c.do(ctx, http.MethodPost, "/budget/sessions", q, nil, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// SubmitBudgetAnswer records one scenario answer against a session.
func (c *Client) SubmitBudgetAnswer(ctx context.Context, sessionID string, questionIndex, answer int) (*types.AnswerResult, error) {
	q := url.Values{
		"question_index": {strconv.Itoa(questionIndex)},
		"user_answer":    {strconv.Itoa(answer)},
	}
	var result types.AnswerResult
	if err := c.do(ctx, http.MethodPost, "/budget/sessions/"+sessionID+"/answer", q, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
