package live

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"promohub/internal/catalog"
	"promohub/internal/countdown"
	"promohub/internal/promo"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // single-origin storefront; restrict if ever exposed
	},
}

// command is one viewer action. Filter and sort commands reset the page;
// page commands only move within the current projection.
type command struct {
	Action string `json:"action"` // search, category, sort, page, next, prev
	Value  string `json:"value,omitempty"`
}

type pageFrame struct {
	Type string             `json:"type"`
	Data promo.PageResponse `json:"data"`
}

type countdownFrame struct {
	Type  string            `json:"type"`
	Items []countdown.Frame `json:"items"`
}

type errorFrame struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type welcomeFrame struct {
	Type     string `json:"type"`
	ClientID string `json:"client_id"`
}

// WSHandler upgrades the connection and runs the session loop until the
// client goes away.
func WSHandler(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}

		cl := &client{
			id:      uuid.New(),
			conn:    ws,
			session: catalog.NewSession(hub.store, hub.pageSize),
			tracker: countdown.NewTracker(),
		}
		hub.add(cl)
		log.Printf("[live] client %s connected", cl.id)

		_ = cl.writeJSON(welcomeFrame{Type: "welcome", ClientID: cl.id.String()})

		// initial render
		if err := hub.pushPage(cl); err != nil {
			hub.remove(cl)
			return
		}

		for {
			var cmd command
			if err := ws.ReadJSON(&cmd); err != nil {
				break
			}
			if err := apply(cl, cmd); err != nil {
				_ = cl.writeJSON(errorFrame{Type: "error", Message: err.Error()})
				continue
			}
			if err := hub.pushPage(cl); err != nil {
				break
			}
		}

		hub.remove(cl)
		log.Printf("[live] client %s disconnected", cl.id)
	}
}

func apply(cl *client, cmd command) error {
	switch cmd.Action {
	case "search":
		cl.session.SetSearch(cmd.Value)
	case "category":
		cl.session.SetCategory(cmd.Value)
	case "sort":
		cl.session.SetSort(catalog.ParseSortMode(cmd.Value))
	case "page":
		cl.session.SetPage(atoiOr(cmd.Value, 1))
	case "next":
		cl.session.Next()
	case "prev":
		cl.session.Prev()
	case "refresh":
		// re-render only; catalog reloads go through the HTTP endpoint
	default:
		return errUnknownAction(cmd.Action)
	}
	return nil
}
