package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmai/farmai/backend/internal/analysis/advisor"
)

func TestREPLConversation(t *testing.T) {
	ctx := context.Background()
	svc, err := newChatService(ctx, 0)
	require.NoError(t, err)

	in := strings.NewReader("hello\n/quick market\n/photo https://example.com/corn.jpg\n/photo\n/quit\nnever read\n")
	var out bytes.Buffer
	require.NoError(t, runREPL(ctx, in, &out, svc, "Corn"))

	got := out.String()
	assert.Contains(t, got, advisor.Greeting)
	assert.Contains(t, got, advisor.Respond("hello", "Corn"))
	assert.Contains(t, got, "What are current market prices for Corn?")
	assert.Contains(t, got, advisor.Respond("What are current market prices for Corn?", "Corn"))
	assert.Contains(t, got, "photo attached")
	assert.Contains(t, got, "error: message text is required")
	assert.NotContains(t, got, "never read")
}

func TestREPLEndsAtEOF(t *testing.T) {
	ctx := context.Background()
	svc, err := newChatService(ctx, 0)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, runREPL(ctx, strings.NewReader("water?"), &out, svc, "Rice"))
	assert.Contains(t, out.String(), "For your Rice crop")
}

func TestAskCommand(t *testing.T) {
	plantName = "Wheat"
	cmd := askCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"will", "it", "rain?"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, advisor.Respond("will it rain?", "Wheat")+"\n", out.String())
}

func TestQuickRepliesCommand(t *testing.T) {
	cmd := quickRepliesCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())
	for _, reply := range advisor.QuickReplies() {
		assert.Contains(t, out.String(), reply.ID)
	}
}

func TestTopicsCommandListsRulesInOrder(t *testing.T) {
	cmd := topicsCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, len(advisor.Rules()))
	assert.True(t, strings.HasPrefix(lines[0], string(advisor.Watering)))
	assert.Contains(t, lines[2], "pest")
}
