package slack_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"testing"

	"whats4dinner/slack"
	"whats4dinner/spoonacular"

	should "github.com/stretchr/testify/assert"
	must "github.com/stretchr/testify/require"
)

type mockDoer struct {
	resp   *http.Response
	err    error
	doFunc func(req *http.Request) (*http.Response, error)
}

func (m *mockDoer) Do(req *http.Request) (*http.Response, error) {
	if m.doFunc != nil {
		return m.doFunc(req)
	}
	return m.resp, m.err
}

func TestNewClient(t *testing.T) {
	webhook := "http://slack.com/webhook"
	client := slack.NewClient(webhook, &mockDoer{})
	must.NotNil(t, client, "expected non-nil client")
}

func TestPostMessage(t *testing.T) {
	tests := []struct {
		name    string
		doFunc  func(req *http.Request) (*http.Response, error)
		wantErr error
	}{
		{
			name: "success",
			doFunc: func(req *http.Request) (*http.Response, error) {
				return &http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(bytes.NewBufferString("ok"))}, nil
			},
			wantErr: nil,
		},
		{
			name: "failure status",
			doFunc: func(req *http.Request) (*http.Response, error) {
				return &http.Response{StatusCode: http.StatusBadRequest, Status: "400 Bad Request", Body: io.NopCloser(bytes.NewBufferString("bad request"))}, nil
			},
			wantErr: fmt.Errorf("failed to post message: 400 Bad Request"),
		},
		{
			name: "do error",
			doFunc: func(req *http.Request) (*http.Response, error) {
				return nil, errors.New("network error")
			},
			wantErr: fmt.Errorf("network error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := slack.NewClient("http://example.com/webhook", &mockDoer{doFunc: tt.doFunc})
			err := client.PostMessage(context.Background(), "#general", "Hello, world!")
			should.Equal(t, tt.wantErr, err)
		})
	}
}

func TestPostSuggestions(t *testing.T) {
	var got map[string]any
	doer := &mockDoer{doFunc: func(req *http.Request) (*http.Response, error) {
		must.NoError(t, json.NewDecoder(req.Body).Decode(&got))
		return &http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(bytes.NewBufferString("ok"))}, nil
	}}

	client := slack.NewClient("http://example.com/webhook", doer)
	err := client.PostSuggestions(context.Background(), "#dinner", []spoonacular.RecipeSummary{
		{ID: 716429, Title: "Garlic Pasta"},
	}, "")
	must.NoError(t, err)
	should.Equal(t, "#dinner", got["channel"])
	should.Equal(t, ":fork_and_knife: *What's 4 dinner tonight?*\n1. Garlic Pasta", got["text"])
}

func TestFormatSuggestions(t *testing.T) {
	tests := []struct {
		name    string
		recipes []spoonacular.RecipeSummary
		appURL  string
		want    string
	}{
		{
			name: "no recipes",
			want: "No dinner ideas match your pantry tonight.",
		},
		{
			name:    "plain titles are escaped",
			recipes: []spoonacular.RecipeSummary{{ID: 1, Title: "Mac & Cheese"}, {ID: 2, Title: "Soup <3"}},
			want:    ":fork_and_knife: *What's 4 dinner tonight?*\n1. Mac &amp; Cheese\n2. Soup &lt;3",
		},
		{
			name:    "linked titles",
			recipes: []spoonacular.RecipeSummary{{ID: 716429, Title: "Garlic Pasta"}},
			appURL:  "https://dinner.example.com/",
			want:    ":fork_and_knife: *What's 4 dinner tonight?*\n1. <https://dinner.example.com/recipes/716429|Garlic Pasta>",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			should.Equal(t, tt.want, slack.FormatSuggestions(tt.recipes, tt.appURL))
		})
	}
}
