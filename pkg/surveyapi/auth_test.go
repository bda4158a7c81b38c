package surveyapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/evanterry/surveyor/pkg/apperrors"
	"github.com/evanterry/surveyor/pkg/credentials"
	"github.com/evanterry/surveyor/pkg/models"
	"github.com/evanterry/surveyor/pkg/testhelpers"
)

func TestLogin_SuccessStoresCredentials(t *testing.T) {
	c, backend, store := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, c.Login(ctx, backend.Username, backend.Password))

	got, ok, err := store.Get(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, backend.Username, got.Username)
	assert.True(t, c.IsAuthenticated(ctx))

	req := backend.LastRequest()
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "login", req.RawQuery)
	assert.Equal(t, "application/x-www-form-urlencoded", req.Header.Get("Content-Type"))
	assert.Empty(t, req.Header.Get("Authorization"), "login uses the form, not Basic auth")

	form, err := url.ParseQuery(string(req.Body))
	require.NoError(t, err)
	assert.Equal(t, backend.Password, form.Get("password"))
}

func TestLogin_RejectedLeavesStoreUntouched(t *testing.T) {
	c, backend, store := newTestClient(t)
	ctx := context.Background()
	previous := credentials.Credentials{Username: "old", Password: "old-pw"}
	require.NoError(t, store.Set(ctx, previous))

	err := c.Login(ctx, backend.Username, "wrong")
	assert.ErrorIs(t, err, apperrors.ErrLoginFailed)
	assert.ErrorIs(t, err, apperrors.ErrInvalidResponse)
	assert.Equal(t, apperrors.MsgInvalidLogin, apperrors.UserMessage(err))

	got, ok, err := store.Get(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, previous, got)
}

func TestLogin_BlankSendsNothing(t *testing.T) {
	c, backend, _ := newTestClient(t)

	assert.ErrorIs(t, c.Login(context.Background(), "  ", "pw"), apperrors.ErrLoginFailed)
	assert.ErrorIs(t, c.Login(context.Background(), "user", ""), apperrors.ErrLoginFailed)
	assert.Empty(t, backend.Requests())
}

func TestLogout(t *testing.T) {
	c, backend, _ := newTestClient(t)
	ctx := context.Background()
	require.NoError(t, c.Login(ctx, backend.Username, backend.Password))

	user, ok := c.Username(ctx)
	assert.True(t, ok)
	assert.Equal(t, backend.Username, user)

	require.NoError(t, c.Logout(ctx))
	assert.False(t, c.IsAuthenticated(ctx))
}

func validBarrier() models.Barrier {
	return models.Barrier{
		QuestionID:        "Q-21",
		Location:          "North entrance",
		UseCode:           "B",
		DOJCode:           "2",
		SeverityCode:      "C",
		ExistingCondition: "Slope measured at 10%",
	}
}

func TestSubmitBarrier_RequiresCredentials(t *testing.T) {
	c, backend, _ := newTestClient(t)

	err := c.SubmitBarrier(context.Background(), validBarrier())
	assert.ErrorIs(t, err, apperrors.ErrNotAuthenticated)
	assert.Empty(t, backend.Requests())
}

func TestSubmitBarrier_InvalidBarrier(t *testing.T) {
	c, backend, _ := newTestClient(t)
	require.NoError(t, c.Login(context.Background(), backend.Username, backend.Password))

	b := validBarrier()
	b.SeverityCode = "Z"
	err := c.SubmitBarrier(context.Background(), b)
	assert.ErrorIs(t, err, apperrors.ErrInvalidBarrier)
	assert.Len(t, backend.Requests(), 1, "only the login request")
}

func TestSubmitBarrier_PostsPayload(t *testing.T) {
	c, backend, _ := newTestClient(t)
	ctx := context.Background()
	require.NoError(t, c.Login(ctx, backend.Username, backend.Password))

	b := validBarrier()
	b.Photos = models.EncodePhotos([][]byte{{0xFF, 0xD8, 0xFF}})
	require.NoError(t, c.SubmitBarrier(ctx, b))

	got := backend.Barriers()
	require.Len(t, got, 1)
	assert.Equal(t, b, got[0])

	req := backend.LastRequest()
	assert.Equal(t, testhelpers.BarrierPath, req.Path)
	assert.Equal(t, "application/json", req.Header.Get("Content-Type"))

	var raw map[string]any
	require.NoError(t, json.Unmarshal(req.Body, &raw))
	assert.Equal(t, "", raw["surveyorNotes"], "notes are sent even when empty")
	assert.Equal(t, []any{"/9j/"}, raw["photos"])
}

func TestSubmitBarrier_NoPhotosSendsEmptyArray(t *testing.T) {
	c, backend, _ := newTestClient(t)
	ctx := context.Background()
	require.NoError(t, c.Login(ctx, backend.Username, backend.Password))

	require.NoError(t, c.SubmitBarrier(ctx, validBarrier()))

	var raw map[string]any
	require.NoError(t, json.Unmarshal(backend.LastRequest().Body, &raw))
	assert.Equal(t, []any{}, raw["photos"])
}

func TestSubmitBarrier_ServerFailure(t *testing.T) {
	c, backend, _ := newTestClient(t)
	ctx := context.Background()
	require.NoError(t, c.Login(ctx, backend.Username, backend.Password))
	backend.SetBarrierStatus(http.StatusInternalServerError)

	err := c.SubmitBarrier(ctx, validBarrier())
	assert.ErrorIs(t, err, apperrors.ErrInvalidResponse)
	assert.Empty(t, backend.Barriers())
}

func TestSubmitBarrier_PathWithoutLeadingSlash(t *testing.T) {
	backend := testhelpers.NewFakeBackend(t)
	c, err := NewClient(backend.URL(), credentials.NewMemoryStore(), zap.NewNop(),
		WithBarrierPath("evanterry/surveyors.nsf/createBarrier"))
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, c.Login(ctx, backend.Username, backend.Password))

	require.NoError(t, c.SubmitBarrier(ctx, validBarrier()))
	assert.Len(t, backend.Barriers(), 1)
}
