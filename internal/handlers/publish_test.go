package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func TestEventContextSurvivesRequestCancellation(t *testing.T) {
	reqCtx, cancel := context.WithCancel(context.Background())

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil).WithContext(reqCtx)
	c := e.NewContext(req, httptest.NewRecorder())

	ctx, done := eventContext(c)
	defer done()

	// client disconnects after the response was written
	cancel()

	require.Error(t, reqCtx.Err())
	require.NoError(t, ctx.Err())

	_, hasDeadline := ctx.Deadline()
	require.True(t, hasDeadline)
}
