package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ankit705yadav/skillCircle/internal/models"
)

func TestGetAppStats(t *testing.T) {
	env := newTestEnv(t)
	stats := NewStatsService(env.db)

	// Empty database.
	got, appErr := stats.GetAppStats()
	require.Nil(t, appErr)
	assert.Equal(t, &StatsDTO{}, got)

	approver, _, _ := env.acceptedConnection(t)
	extra := env.createUser(t, "subj_extra", "SwiftOtter3")
	post2 := env.createPost(t, extra, models.PostTypeAsk, "Chess partner")

	_, appErr = env.connections.Request(post2.ID, approver.ClerkUserID)
	require.Nil(t, appErr)

	archived := env.createPost(t, extra, models.PostTypeOffer, "Old offer")
	require.NoError(t, env.db.Model(&archived).Update("archived", true).Error)

	got, appErr = stats.GetAppStats()
	require.Nil(t, appErr)
	assert.Equal(t, &StatsDTO{
		TotalUsers:        3,
		TotalConnections:  2,
		ActiveConnections: 1,
		TotalPosts:        3,
		ActivePosts:       2,
	}, got)
}
