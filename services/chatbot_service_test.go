package services

import (
	"testing"
	"time"

	analyticsModels "lms/models/analytics"
	"lms/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCompleter struct {
	calls  int
	answer string
	err    error
}

func (f *fakeCompleter) Complete(question, courseTitle string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.answer, nil
}

func TestAsk_CachesRepeatedQuestions(t *testing.T) {
	db := setupTestDB(t)
	student := createUser(t, db, "alice", "student")
	cache := utils.NewTTLCache()
	completer := &fakeCompleter{answer: "Use channels."}

	actor := studentIdentity(student)

	first, err := Ask(db, cache, completer, actor, "How do goroutines communicate?", nil, 15*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, "api", first.Source)
	assert.Equal(t, "Use channels.", first.Interaction.Answer)
	assert.Equal(t, 1, completer.calls)

	// Same question again: served from the cache, still logged.
	second, err := Ask(db, cache, completer, actor, "How do goroutines communicate?", nil, 15*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, "cache", second.Source)
	assert.Equal(t, "Use channels.", second.Interaction.Answer)
	assert.Equal(t, 1, completer.calls)

	var count int64
	db.Model(&analyticsModels.ChatbotInteraction{}).Count(&count)
	assert.Equal(t, int64(2), count)
}

func TestAsk_CourseScopesTheCacheKey(t *testing.T) {
	db := setupTestDB(t)
	instructor := createUser(t, db, "teach", "instructor")
	student := createUser(t, db, "bob", "student")
	crs := createCourse(t, db, instructor.ID, "go-basics")
	cache := utils.NewTTLCache()
	completer := &fakeCompleter{answer: "It depends."}

	actor := studentIdentity(student)

	_, err := Ask(db, cache, completer, actor, "What is a pointer?", nil, 15*time.Minute)
	require.NoError(t, err)

	// Same wording scoped to a course misses the global entry.
	answer, err := Ask(db, cache, completer, actor, "What is a pointer?", &crs.ID, 15*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, "api", answer.Source)
	assert.Equal(t, 2, completer.calls)
}

func TestAsk_Validation(t *testing.T) {
	db := setupTestDB(t)
	student := createUser(t, db, "carol", "student")
	cache := utils.NewTTLCache()
	completer := &fakeCompleter{answer: "ok"}

	actor := studentIdentity(student)

	_, err := Ask(db, cache, completer, actor, "   ", nil, 15*time.Minute)
	svcErr, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, CodeInvalidArgument, svcErr.Code)

	missing := uint(9999)
	_, err = Ask(db, cache, completer, actor, "Anything?", &missing, 15*time.Minute)
	svcErr, ok = AsError(err)
	require.True(t, ok)
	assert.Equal(t, CodeNotFound, svcErr.Code)
	assert.Equal(t, 0, completer.calls)
}

func TestSubmitFeedback_OwnerGateAndRange(t *testing.T) {
	db := setupTestDB(t)
	student := createUser(t, db, "dave", "student")
	other := createUser(t, db, "erin", "student")
	cache := utils.NewTTLCache()
	completer := &fakeCompleter{answer: "42"}

	answer, err := Ask(db, cache, completer, studentIdentity(student), "Meaning of life?", nil, 15*time.Minute)
	require.NoError(t, err)
	interactionID := answer.Interaction.ID

	_, err = SubmitFeedback(db, studentIdentity(student), interactionID, 6)
	svcErr, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, CodeInvalidArgument, svcErr.Code)

	_, err = SubmitFeedback(db, studentIdentity(other), interactionID, 4)
	svcErr, ok = AsError(err)
	require.True(t, ok)
	assert.Equal(t, CodePermissionDenied, svcErr.Code)

	updated, err := SubmitFeedback(db, studentIdentity(student), interactionID, 4)
	require.NoError(t, err)
	require.NotNil(t, updated.Feedback)
	assert.Equal(t, 4, *updated.Feedback)
}

func TestAsk_ExpiredCacheEntryGoesBackToAPI(t *testing.T) {
	db := setupTestDB(t)
	student := createUser(t, db, "frank", "student")
	cache := utils.NewTTLCache()
	completer := &fakeCompleter{answer: "stale"}

	actor := studentIdentity(student)

	key := chatCacheKey("old question", nil)
	cache.Set(key, "cached answer", -time.Minute)

	answer, err := Ask(db, cache, completer, actor, "old question", nil, 15*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, "api", answer.Source)
	assert.Equal(t, "stale", answer.Interaction.Answer)
}
