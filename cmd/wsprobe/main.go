// Package main provides a small probe for the notification WebSocket endpoint.
// It logs in, obtains a single-use ticket, connects, and prints every event
// the server pushes. With -send it also relays a notification frame so a
// second probe instance can verify fan-out.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
)

func main() {
	host := flag.String("host", "localhost:8473", "API server host")
	username := flag.String("username", "", "Username to log in with")
	password := flag.String("password", "", "Password to log in with")
	send := flag.Bool("send", false, "Send a test notification frame after connecting")
	flag.Parse()

	if *username == "" || *password == "" {
		log.Fatal("both -username and -password are required")
	}

	token, err := login(*host, *username, *password)
	if err != nil {
		log.Fatalf("login failed: %v", err)
	}
	log.Println("logged in")

	ticket, err := getTicket(*host, token)
	if err != nil {
		log.Fatalf("ticket request failed: %v", err)
	}

	wsURL := url.URL{Scheme: "ws", Host: *host, Path: "/api/ws/", RawQuery: "ticket=" + ticket}
	conn, _, err := websocket.DefaultDialer.Dial(wsURL.String(), nil)
	if err != nil {
		log.Fatalf("websocket dial failed: %v", err)
	}
	defer func() { _ = conn.Close() }()
	log.Printf("connected to %s", wsURL.String())

	if *send {
		frame := map[string]any{
			"type": "notification",
			"payload": map[string]any{
				"message": fmt.Sprintf("probe ping from %s at %s", *username, time.Now().Format(time.RFC3339)),
			},
		}
		if err := conn.WriteJSON(frame); err != nil {
			log.Fatalf("send failed: %v", err)
		}
		log.Println("sent notification frame")
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			_, message, err := conn.ReadMessage()
			if err != nil {
				log.Printf("read error: %v", err)
				return
			}
			log.Printf("received: %s", message)
		}
	}()

	select {
	case <-interrupt:
		log.Println("interrupted, closing")
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		select {
		case <-done:
		case <-time.After(2 * time.Second):
		}
	case <-done:
	}
}

func login(host, username, password string) (string, error) {
	body, _ := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})
	resp, err := http.Post(fmt.Sprintf("http://%s/api/auth/login", host),
		"application/json", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("login failed with status %d", resp.StatusCode)
	}

	var result struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	return result.Token, nil
}

func getTicket(host, token string) (string, error) {
	req, err := http.NewRequest(http.MethodPost,
		fmt.Sprintf("http://%s/api/ws/ticket", host), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ticket request failed with status %d", resp.StatusCode)
	}

	var result struct {
		Ticket string `json:"ticket"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	return result.Ticket, nil
}
