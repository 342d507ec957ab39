//go:build e2e

package e2e_test

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestE2E_HealthEndpoints verifies the ops probes against a live database.
func TestE2E_HealthEndpoints(t *testing.T) {
	ts := setupTestServer(t)

	for _, path := range []string{"/live", "/ready", "/health"} {
		resp, err := ts.Client.Get(ts.URL + path)
		require.NoError(t, err)

		var body map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
		assert.Equal(t, "ok", body["status"], path)
	}
}

// TestE2E_AuthRequired verifies that workflow routes reject anonymous and
// forged callers.
func TestE2E_AuthRequired(t *testing.T) {
	ts := setupTestServer(t)

	status, resp := ts.call(t, http.MethodGet, "/content/moderation-queue", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.False(t, resp.Success)

	status, _ = ts.call(t, http.MethodGet, "/content/moderation-queue", "not.a.jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = ts.call(t, http.MethodPost, "/auth/login", "", map[string]string{"username": editorName, "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, status)
}

// TestE2E_ApproveFlow walks a card from ideation to an approved schedule.
func TestE2E_ApproveFlow(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.login(t, adminName, adminPass)

	c := ts.queuedCard(t, token, "العودة إلى المدارس "+uuid.NewString()[:8])

	status, resp := ts.call(t, http.MethodGet, "/content/moderation-queue", token, nil)
	require.Equal(t, http.StatusOK, status)
	var queue []card
	decode(t, resp, &queue)
	require.True(t, containsCard(queue, c.ID), "queued card missing from moderation queue")
	for _, q := range queue {
		if q.ID == c.ID {
			assert.NotEmpty(t, q.Ideas, "queue view should embed idea options")
		}
	}

	status, resp = ts.call(t, http.MethodPost, "/content/"+c.ID+"/approve", token, nil)
	require.Equal(t, http.StatusOK, status, resp.Error)
	var approved card
	decode(t, resp, &approved)

	assert.Equal(t, "Scheduled", approved.Status)
	require.NotNil(t, approved.ModerationStatus)
	assert.Equal(t, "Approved", *approved.ModerationStatus)
	require.Len(t, approved.AuditTrail, 1)
	assert.Equal(t, adminName, approved.AuditTrail[0].User)
	assert.Equal(t, "تمت الموافقة على المحتوى", approved.AuditTrail[0].Action)

	status, resp = ts.call(t, http.MethodGet, "/content/moderation-queue", token, nil)
	require.Equal(t, http.StatusOK, status)
	decode(t, resp, &queue)
	assert.False(t, containsCard(queue, c.ID), "approved card should leave the queue")

	// A decided card cannot be decided again.
	status, _ = ts.call(t, http.MethodPost, "/content/"+c.ID+"/approve", token, nil)
	assert.Equal(t, http.StatusConflict, status)
	status, _ = ts.call(t, http.MethodPost, "/content/"+c.ID+"/reject", token, map[string]string{"reason": "late"})
	assert.Equal(t, http.StatusConflict, status)
}

// TestE2E_RejectFlow verifies reject requires a reason and records it.
func TestE2E_RejectFlow(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.login(t, editorName, editorPass)

	c := ts.queuedCard(t, token, "رمضان "+uuid.NewString()[:8])

	status, resp := ts.call(t, http.MethodPost, "/content/"+c.ID+"/reject", token, map[string]string{"reason": "   "})
	require.Equal(t, http.StatusBadRequest, status)
	assert.NotEmpty(t, resp.Fields["reason"])

	status, resp = ts.call(t, http.MethodPost, "/content/"+c.ID+"/reject", token, map[string]string{"reason": "الصورة غير مناسبة"})
	require.Equal(t, http.StatusOK, status, resp.Error)
	var rejected card
	decode(t, resp, &rejected)

	assert.Equal(t, "Rejected", rejected.Status)
	require.NotNil(t, rejected.ModerationReason)
	assert.Equal(t, "الصورة غير مناسبة", *rejected.ModerationReason)
	require.Len(t, rejected.AuditTrail, 1)
	assert.True(t, strings.Contains(rejected.AuditTrail[0].Details, "الصورة غير مناسبة"))

	status, _ = ts.call(t, http.MethodPost, "/scheduling/submit-review", token, map[string]string{"cardId": c.ID})
	assert.Equal(t, http.StatusConflict, status)
}

// TestE2E_ConcurrentDecisions verifies exactly one of many simultaneous
// decisions on one card wins.
func TestE2E_ConcurrentDecisions(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.login(t, adminName, adminPass)

	c := ts.queuedCard(t, token, "قرار متزامن "+uuid.NewString()[:8])

	const workers = 6
	codes := make([]int, workers)
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			path, body := "/content/"+c.ID+"/approve", ""
			if i%2 == 1 {
				path, body = "/content/"+c.ID+"/reject", `{"reason":"dup"}`
			}
			req, err := http.NewRequest(http.MethodPost, ts.URL+path, strings.NewReader(body))
			if err != nil {
				errs[i] = err
				return
			}
			req.Header.Set("Authorization", "Bearer "+token)
			resp, err := ts.Client.Do(req)
			if err != nil {
				errs[i] = err
				return
			}
			resp.Body.Close()
			codes[i] = resp.StatusCode
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}

	var ok, conflict int
	for _, code := range codes {
		switch code {
		case http.StatusOK:
			ok++
		case http.StatusConflict:
			conflict++
		}
	}
	assert.Equal(t, 1, ok, "codes: %v", codes)
	assert.Equal(t, workers-1, conflict, "codes: %v", codes)

	status, resp := ts.call(t, http.MethodGet, "/content/"+c.ID, token, nil)
	require.Equal(t, http.StatusOK, status)
	var final card
	decode(t, resp, &final)
	assert.Len(t, final.AuditTrail, 1)
}

// TestE2E_ScheduleAndLibrary covers manual scheduling and archiving.
func TestE2E_ScheduleAndLibrary(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.login(t, editorName, editorPass)

	status, resp := ts.call(t, http.MethodPost, "/content", token, map[string]string{"topic": "اليوم الوطني", "platform": "instagram"})
	require.Equal(t, http.StatusCreated, status, resp.Error)
	var c card
	decode(t, resp, &c)

	status, resp = ts.call(t, http.MethodPost, "/scheduling/schedule", token, map[string]string{
		"cardId":        c.ID,
		"scheduledDate": "2026-11-03",
		"scheduledTime": "25:00",
		"platform":      "instagram",
	})
	require.Equal(t, http.StatusBadRequest, status)
	assert.NotEmpty(t, resp.Fields["scheduledTime"])

	status, resp = ts.call(t, http.MethodPost, "/scheduling/schedule", token, map[string]string{
		"cardId":        c.ID,
		"scheduledDate": "2026-11-03",
		"scheduledTime": "10:30",
		"platform":      "instagram",
	})
	require.Equal(t, http.StatusOK, status, resp.Error)
	decode(t, resp, &c)
	assert.Equal(t, "Scheduled", c.Status)
	require.NotNil(t, c.ScheduledDate)
	assert.Equal(t, "2026-11-03", *c.ScheduledDate)

	status, resp = ts.call(t, http.MethodPost, "/scheduling/add-library", token, map[string]string{"cardId": c.ID})
	require.Equal(t, http.StatusOK, status, resp.Error)

	status, resp = ts.call(t, http.MethodGet, "/content/library", token, nil)
	require.Equal(t, http.StatusOK, status)
	var library []card
	decode(t, resp, &library)
	assert.True(t, containsCard(library, c.ID))
}

// TestE2E_Categories covers category creation, idea planning and summary.
func TestE2E_Categories(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.login(t, adminName, adminPass)

	status, resp := ts.call(t, http.MethodPost, "/content/categories", token, map[string]string{
		"name":            "Exams " + uuid.NewString()[:8],
		"primaryGoal":     "education",
		"primaryAudience": "student",
	})
	require.Equal(t, http.StatusCreated, status, resp.Error)
	var cat struct {
		ID       string   `json:"id"`
		Priority string   `json:"priority"`
		Angles   []string `json:"angles"`
	}
	decode(t, resp, &cat)
	assert.Equal(t, "medium", cat.Priority)
	assert.NotEmpty(t, cat.Angles)

	status, resp = ts.call(t, http.MethodPost, "/content/ideas/generate", token, map[string]string{
		"categoryId":  cat.ID,
		"angle":       "educational",
		"contentType": "carousel",
	})
	require.Equal(t, http.StatusCreated, status, resp.Error)
	var ideas []struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	decode(t, resp, &ideas)
	require.NotEmpty(t, ideas)
	assert.Equal(t, "draft", ideas[0].Status)

	status, resp = ts.call(t, http.MethodPut, "/content/ideas/"+ideas[0].ID+"/approve", token, nil)
	require.Equal(t, http.StatusOK, status, resp.Error)

	status, resp = ts.call(t, http.MethodGet, "/content/categories/summary", token, nil)
	require.Equal(t, http.StatusOK, status)
	var summary []struct {
		Category struct {
			ID string `json:"id"`
		} `json:"category"`
		IdeasCount    int `json:"ideasCount"`
		ApprovedIdeas int `json:"approvedIdeas"`
	}
	decode(t, resp, &summary)

	found := false
	for _, s := range summary {
		if s.Category.ID == cat.ID {
			found = true
			assert.Equal(t, len(ideas), s.IdeasCount)
			assert.Equal(t, 1, s.ApprovedIdeas)
		}
	}
	assert.True(t, found, "created category missing from summary")

	status, _ = ts.call(t, http.MethodPost, "/content/ideas/generate", token, map[string]string{
		"categoryId":  uuid.NewString(),
		"angle":       "educational",
		"contentType": "text",
	})
	assert.Equal(t, http.StatusNotFound, status)
}

// TestE2E_RequestID verifies every response carries a request id.
func TestE2E_RequestID(t *testing.T) {
	ts := setupTestServer(t)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/live", nil)
	require.NoError(t, err)
	req.Header.Set("X-Request-Id", "e2e-request-1")

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "e2e-request-1", resp.Header.Get("X-Request-Id"))
}
