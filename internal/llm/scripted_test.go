package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScripted_PlaysRepliesInOrder(t *testing.T) {
	p := NewScripted(
		JSON(`{"suggestions":["React Hooks","React Router"]}`),
		Reply{Content: []byte("def two_sum(nums, target):\n    pass"), Usage: newUsage(20, 9)},
		Fail(&ErrRateLimit{Err: errors.New("429")}),
	)
	ctx := context.Background()

	resp, err := p.Generate(ctx, Request{Purpose: "suggest"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"suggestions":["React Hooks","React Router"]}`, string(resp.Content))
	assert.Equal(t, StopEnd, resp.StopReason)

	resp, err = p.Generate(ctx, Request{Purpose: "starter-code"})
	require.NoError(t, err)
	assert.Equal(t, "def two_sum(nums, target):\n    pass", resp.Text())
	assert.Equal(t, 29, resp.Usage.TotalTokens)

	_, err = p.Generate(ctx, Request{})
	var rl *ErrRateLimit
	assert.ErrorAs(t, err, &rl)

	_, err = p.Generate(ctx, Request{})
	var unavail *ErrProviderUnavailable
	assert.ErrorAs(t, err, &unavail)
	assert.Equal(t, 4, p.Calls())
}

func TestScripted_RecordsRequests(t *testing.T) {
	p := NewScripted(JSON(`{}`))
	_, err := p.Generate(context.Background(), Request{
		Purpose:  "test-gen",
		System:   "You write skill assessments for software engineers.",
		Messages: []Message{{Role: RoleUser, Content: `Generate 5 questions about "Go".`}},
	})
	require.NoError(t, err)

	reqs := p.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "test-gen", reqs[0].Purpose)
	assert.Contains(t, reqs[0].Messages[0].Content, `"Go"`)

	reqs[0].Purpose = "changed"
	assert.Equal(t, "test-gen", p.Requests()[0].Purpose)
	assert.Equal(t, "mock", p.ModelID())
}

func TestRequest_Defaults(t *testing.T) {
	assert.Equal(t, "unknown", Request{}.purpose())
	assert.Equal(t, "suggest", Request{Purpose: "suggest"}.purpose())
	assert.Equal(t, defaultMaxTokens, Request{}.maxTokens())
	assert.Equal(t, 1024, Request{MaxTokens: 1024}.maxTokens())
}
