package events

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"

	"table-booking-backend/models"
)

// Event types
const (
	EventTableCreate     = "table_create"
	EventTableUpdate     = "table_update"
	EventTableDelete     = "table_delete"
	EventBookingCreate   = "booking_create"
	EventBookingUpdate   = "booking_update"
	EventBookingDelete   = "booking_delete"
	EventDashboardUpdate = "dashboard_update"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub holds the connected dashboard clients (admin, manager) and fans
// booking/table changes out to them.
type Hub struct {
	clients map[*websocket.Conn]string // conn -> role
	mutex   sync.Mutex
}

var hub = Hub{
	clients: make(map[*websocket.Conn]string),
}

// RegisterClient adds a connection with its role to the hub.
func RegisterClient(conn *websocket.Conn, role string) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = role
}

// UnregisterClient drops a connection and closes it.
func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

// BroadcastTableCreate announces a new table.
func BroadcastTableCreate(table models.Table) {
	broadcast(Message{Event: EventTableCreate, Data: table})
}

// BroadcastTableUpdate announces a table change (capacity, offline switch, ...).
func BroadcastTableUpdate(table models.Table) {
	broadcast(Message{Event: EventTableUpdate, Data: table})
}

// BroadcastTableDelete announces a removed table.
func BroadcastTableDelete(tableID uint) {
	broadcast(Message{Event: EventTableDelete, Data: map[string]interface{}{"table_id": tableID}})
}

// BroadcastBookingCreate announces an admitted booking.
func BroadcastBookingCreate(booking models.Booking) {
	broadcast(Message{Event: EventBookingCreate, Data: booking})
}

// BroadcastBookingUpdate announces a booking change (status, reschedule, ...).
func BroadcastBookingUpdate(booking models.Booking) {
	broadcast(Message{Event: EventBookingUpdate, Data: booking})
}

// BroadcastBookingDelete announces a removed booking.
func BroadcastBookingDelete(bookingID uint) {
	broadcast(Message{Event: EventBookingDelete, Data: map[string]interface{}{"booking_id": bookingID}})
}

// BroadcastDashboardUpdate pushes fresh dashboard stats.
func BroadcastDashboardUpdate(data interface{}) {
	broadcast(Message{Event: EventDashboardUpdate, Data: data})
}

// BroadcastMessage broadcasts an arbitrary message.
func BroadcastMessage(msg Message) {
	broadcast(msg)
}

func broadcast(msg Message) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling event message: %v", err)
		return
	}

	for conn := range hub.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("Error sending event to client: %v", err)
			continue
		}
	}
}
