package transport

import "time"

type SettingValue struct {
	Key   string `json:"chave"`
	Value string `json:"valor"`
}

type SystemStatistics struct {
	TotalTickets int64 `json:"totalTickets"`
	TicketsToday int64 `json:"ticketsHoje"`
	ActiveUsers  int64 `json:"usuariosAtivos"`
}

type SystemInfo struct {
	SystemName string           `json:"systemName"`
	Version    string           `json:"version"`
	ServerTime time.Time        `json:"serverTime"`
	Statistics SystemStatistics `json:"statistics"`
}
