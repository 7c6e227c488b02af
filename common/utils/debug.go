package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type Context map[string]interface{}

type Message struct {
	Time    string  `json:"time"`
	Service string  `json:"service"`
	Message string  `json:"message"`
	Context Context `json:"context"`
}

func newMessage(service string, message string, contexts ...Context) Message {
	context := make(Context)

	if hostname, err := os.Hostname(); err == nil {
		context["hostname"] = hostname
	}

	for _, extra := range contexts {
		for key, value := range extra {
			context[key] = value
		}
	}

	return Message{
		Time:    time.Now().Format(time.RFC3339),
		Service: service,
		Message: message,
		Context: context,
	}
}

// Debug emits one structured JSON line; caller context entries are
// merged over the ambient ones.
func Debug(service string, message string, contexts ...Context) {
	data, _ := json.Marshal(newMessage(service, message, contexts...))
	fmt.Println(string(data))
}
