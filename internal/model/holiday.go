package model

// Holiday : праздничный день; источник — сторонний API либо встроенный региональный список
type Holiday struct {
	Date   string `json:"date"`
	Name   string `json:"name"`
	Source string `json:"source,omitempty"`
}
