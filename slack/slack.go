package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"whats4dinner/spoonacular"
)

type doer interface {
	Do(req *http.Request) (*http.Response, error)
}

type Client struct {
	webhookURL string
	httpClient doer
}

func NewClient(webhookURL string, httpClient doer) *Client {
	return &Client{
		webhookURL: webhookURL,
		httpClient: httpClient,
	}
}

func (c *Client) PostMessage(ctx context.Context, channel string, message string) error {
	payload, err := json.Marshal(map[string]any{
		"channel": channel,
		"text":    message,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to post message: %s", resp.Status)
	}

	return nil
}

// PostSuggestions posts the formatted recipe list to channel.
func (c *Client) PostSuggestions(ctx context.Context, channel string, recipes []spoonacular.RecipeSummary, appURL string) error {
	return c.PostMessage(ctx, channel, FormatSuggestions(recipes, appURL))
}

// FormatSuggestions renders recipes as a Slack mrkdwn list. With a non-empty
// appURL each title links to its detail page.
func FormatSuggestions(recipes []spoonacular.RecipeSummary, appURL string) string {
	if len(recipes) == 0 {
		return "No dinner ideas match your pantry tonight."
	}

	appURL = strings.TrimRight(appURL, "/")

	var b strings.Builder
	b.WriteString(":fork_and_knife: *What's 4 dinner tonight?*\n")
	for i, r := range recipes {
		title := escape(r.Title)
		if appURL != "" {
			title = fmt.Sprintf("<%s/recipes/%d|%s>", appURL, r.ID, title)
		}
		fmt.Fprintf(&b, "%d. %s\n", i+1, title)
	}
	return strings.TrimRight(b.String(), "\n")
}

// escape applies Slack's control-character escaping.
func escape(s string) string {
	return strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;").Replace(s)
}
