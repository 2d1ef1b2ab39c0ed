package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"ehpadacademy/internal/types"
)

// QuizThemes lists the themes that currently have a question set.
func (c *Client) QuizThemes(ctx context.Context) ([]types.Theme, error) {
	var themes []types.Theme
	if err := c.do(ctx, http.MethodGet, "/quiz/themes", nil, nil, &themes); err != nil {
		return nil, err
	}
	return themes, nil
}

// ThemeQuestions fetches the question list for one theme.
func (c *Client) ThemeQuestions(ctx context.Context, themeID string) ([]types.Question, error) {
	var questions []types.Question
	if err := c.do(ctx, http.MethodGet, "/quiz/themes/"+themeID+"/questions", nil, nil, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

// StartQuizSession opens a server-tracked attempt for the user and theme.
func (c *Client) StartQuizSession(ctx context.Context, userID, theme string) (*types.QuizSession, error) {
	q := url.Values{"user_id": {userID}, "theme": {theme}}
	var session types.QuizSession
	if err := c.do(ctx, http.MethodPost, "/quiz/sessions", q, nil, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// SubmitQuizAnswer records one answer against a session and returns the
// server's verdict.
func (c *Client) SubmitQuizAnswer(ctx context.Context, sessionID string, questionID, answer int) (*types.AnswerResult, error) {
	q := url.Values{
		"question_id": {strconv.Itoa(questionID)},
		"user_answer": {strconv.Itoa(answer)},
	}
	var result types.AnswerResult
	if err := c.do(ctx, http.MethodPost, "/quiz/sessions/"+sessionID+"/answer", q, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
