package handlers

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/workforce-api/internal/dto"
	"github.com/yukikurage/workforce-api/internal/workforce"
)

func TestWellbeingHandler_MoodAndRisk(t *testing.T) {
	env := setupAPITestEnv(t)
	staff := env.login(t, "neo")

	w := env.do(t, http.MethodPost, "/api/moods", map[string]interface{}{"type": "PRE_SHIFT", "mood_value": 9}, staff)
	require.Equal(t, http.StatusBadRequest, w.Code)

	for i, v := range []int{2, 1, 2} {
		env.now = env.now.Add(time.Hour)
		w = env.do(t, http.MethodPost, "/api/moods", map[string]interface{}{
			"type":       "POST_SHIFT",
			"mood_value": v,
			"comment":    "running on empty",
			"is_shared":  i == 0,
		}, staff)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	path := fmt.Sprintf("/api/users/%d/burnout-risk", env.f.Staff.ID)
	w = env.do(t, http.MethodGet, path, nil, staff)
	require.Equal(t, http.StatusOK, w.Code)
	var own dto.RiskResponse
	decode(t, w, &own)
	assert.Equal(t, workforce.RiskHigh, own.Assessment.Level)

	w = env.do(t, http.MethodGet, path, nil, env.login(t, "trinity"))
	require.Equal(t, http.StatusOK, w.Code)
	var managed dto.RiskResponse
	decode(t, w, &managed)
	withComment := 0
	for _, e := range managed.Entries {
		if e.Comment != nil {
			withComment++
		}
	}
	assert.Equal(t, 1, withComment)

	w = env.do(t, http.MethodGet, path, nil, env.login(t, "niobe"))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestWellbeingHandler_TeamRisk(t *testing.T) {
	env := setupAPITestEnv(t)

	w := env.do(t, http.MethodGet, "/api/team/burnout-risk", nil, env.login(t, "trinity"))
	require.Equal(t, http.StatusForbidden, w.Code)

	w = env.do(t, http.MethodGet, "/api/team/burnout-risk", nil, env.login(t, "morpheus"))
	require.Equal(t, http.StatusOK, w.Code)
	var response dto.TeamRiskResponse
	decode(t, w, &response)
	assert.Len(t, response.Users, 5)
}
