package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/servushq/servus-raffle/internal/api/handler/v1/response"
	"github.com/servushq/servus-raffle/internal/realtime"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Adjust this for production!
	},
}

type LiveHandler struct {
	hub *realtime.Hub
}

func NewLiveHandler(hub *realtime.Hub) *LiveHandler {
	return &LiveHandler{
		hub: hub,
	}
}

// HandleLive godoc
// @Summary      Subscribe to a raffle's draw events
// @Description  Upgrades to a websocket and relays DRAW_START, WHEEL_SEED, WINNER_REVEALED and RAFFLE_ENDED events. Viewing is public.
// @Tags         draw
// @Produce      json
// @Param        raffleID   path      string true "raffle ID"
// @Success      101 {string} string "Switching Protocols to WebSocket"
// @Failure      400 {object} response.Envelope
// @Router       /raffles/{raffleID}/live [get]
func (h *LiveHandler) HandleLive(ctx *gin.Context) {
	raffleID, respErr := uuidParam(ctx, "raffleID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		zap.L().Warn("websocket upgrade failed", zap.Error(err))

		return
	}

	client := realtime.NewClient(h.hub, conn, raffleID)
	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}
