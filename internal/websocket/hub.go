package websocket

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Hub управляет одним активным соединением и транслирует ему события
// пайплайна (старт охоты, прогресс sherlock, предупреждения, результат).
type Hub struct {
	client     *Client // Может быть nil, если нет активного клиента
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	mutex      sync.RWMutex // Мьютекс для защиты доступа к client
}

func NewHub() *Hub {
	return &Hub{
		broadcast:  make(chan []byte, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Client представляет активное WebSocket соединение.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// Message — конверт события для UI.
type Message struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data"`
	Timestamp int64       `json:"timestamp"`
}

// Типы событий, которые публикует пайплайн.
const (
	EventHuntStarted      = "hunt_started"
	EventWarning          = "warning"
	EventSherlockStart    = "sherlock_start"
	EventSherlockProgress = "sherlock_progress"
	EventHuntFinished     = "hunt_finished"
)

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			// Если уже есть активный клиент, отключаем его.
			h.mutex.Lock()
			if h.client != nil {
				close(h.client.send)
			}
			h.client = client
			h.mutex.Unlock()
			log.Info().Msg("websocket client connected")

		case client := <-h.unregister:
			h.mutex.Lock()
			// Убедимся, что отключаем того же самого клиента, который активен.
			if h.client == client {
				close(h.client.send)
				h.client = nil
				log.Info().Msg("websocket client disconnected")
			}
			h.mutex.Unlock()

		case message := <-h.broadcast:
			// Полная блокировка: медленного клиента ниже сбрасываем в nil.
			h.mutex.Lock()
			// Отправляем сообщение только если клиент подключен
			if h.client != nil {
				select {
				case h.client.send <- message:
				default:
					// Канал переполнен: клиент «медленный», отключаем.
					log.Warn().Msg("client send channel is full, closing connection")
					close(h.client.send)
					h.client = nil
				}
			}
			h.mutex.Unlock()
		}
	}
}

// Broadcast безопасно отправляет событие активному клиенту.
func (h *Hub) Broadcast(eventType string, data interface{}) {
	msg := Message{
		Type:      eventType,
		Data:      data,
		Timestamp: time.Now().Unix(),
	}

	jsonData, err := json.Marshal(msg)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal event")
		return
	}

	h.mutex.RLock()
	clientExists := h.client != nil
	h.mutex.RUnlock()

	if clientExists {
		h.broadcast <- jsonData
	}
}

func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("websocket upgrade failed")
		return
	}

	client := &Client{
		hub:  h,
		conn: conn,
		send: make(chan []byte, 256),
	}

	client.hub.register <- client

	go client.writePump()
	go client.readPump()
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	for {
		// Мы должны читать сообщения, чтобы обнаружить, когда клиент отключается
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Debug().Err(err).Msg("readPump error")
			}
			break
		}
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()
	for {
		message, ok := <-c.send
		if !ok {
			// Канал `send` был закрыт хабом.
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}
		c.conn.WriteMessage(websocket.TextMessage, message)
	}
}
