package server

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternarybob/interpres/pkg/models"
)

func TestHandleWebSocket(t *testing.T) {
	srv := testServer(t)
	ts := httptest.NewServer(srv.router)
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("Apple revenue for fy2022")))

	var result models.StructuredQuery
	require.NoError(t, conn.ReadJSON(&result))
	assert.Equal(t, []string{"AAPL"}, result.Tickers())
	assert.Equal(t, models.PeriodSingle, result.Period.Kind)

	// An empty frame gets an error payload, and the session stays open.
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("")))
	var wsErr wsError
	require.NoError(t, conn.ReadJSON(&wsErr))
	assert.Equal(t, "query is required", wsErr.Error)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("Revenue during the pandemic")))
	require.NoError(t, conn.ReadJSON(&result))
	require.Len(t, result.TemporalRelationships, 1)
	assert.Equal(t, models.EventPandemic, result.TemporalRelationships[0].Event)
}
