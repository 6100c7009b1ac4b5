package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"sync"
	"time"
)

var maxMachines int = 1000
var httpHostPort string = "127.0.0.1:1080"
var adminUsername string = "admin"
var adminPassword string = "admin"

var rnd *rand.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))

type machineSession struct {
	apiKey    string
	machineID uint
}

func main() {
	resp, err := http.Get(fmt.Sprintf("http://%s/healthz", httpHostPort))
	if err != nil {
		log.Fatal("Failed to connect to HTTP server:", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Fatal("HTTP server not available")
	}

	fmt.Printf("http server verified\n")

	token := login()
	fmt.Printf("logged in as %s\n", adminUsername)

	sessions := make([]*machineSession, maxMachines)

	var startTime time.Time
	var usedTime time.Duration

	startTime = time.Now()
	wg := sync.WaitGroup{}
	for i := 0; i < maxMachines; i++ {
		i := i
		wg.Add(1)
		go func() {
			sessions[i] = registerMachine(token, i)
			fmt.Printf("\rregistered machine %v", i)
			wg.Done()
		}()
	}
	wg.Wait()
	usedTime = time.Since(startTime)

	fmt.Printf(
		"\rregistered %v machines: used time=%v seconds, throughput=%v action/second\n",
		maxMachines, usedTime.Seconds(), float64(maxMachines*3)/usedTime.Seconds(),
	)

	startTime = time.Now()
	wg = sync.WaitGroup{}
	for i := 0; i < maxMachines; i++ {
		i := i
		wg.Add(1)
		go func() {
			doAction(sessions[i])
			wg.Done()
		}()
	}
	wg.Wait()
	usedTime = time.Since(startTime)

	fmt.Printf(
		"\n\rpolled with %v machines: used time=%v seconds, throughput=%v action/second\n",
		maxMachines, usedTime.Seconds(), float64(maxMachines*3)/usedTime.Seconds(),
	)
}

func postJSON(path string, payload any, headers map[string]string) (int, []byte) {
	jsonData, _ := json.Marshal(payload)
	req, _ := http.NewRequest("POST", fmt.Sprintf("http://%s%s", httpHostPort, path), bytes.NewBuffer(jsonData))
	req.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		panic(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, body
}

func login() string {
	status, body := postJSON("/api/login", map[string]string{
		"username": adminUsername,
		"password": adminPassword,
	}, nil)
	if status != http.StatusOK {
		log.Fatalf("login failed: status=%v body=%s", status, body)
	}

	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		log.Fatal("login response unreadable:", err)
	}
	return resp.Token
}

// registerMachine provisions an API key, authenticates a machine with it
// and reports one peripheral, the same handshake a real client performs on
// boot.
func registerMachine(token string, index int) *machineSession {
	status, body := postJSON("/api/api_keys",
		map[string]string{"name": fmt.Sprintf("bench key %v", index)},
		map[string]string{"Authorization": "Bearer " + token})
	if status != http.StatusCreated {
		panic(fmt.Sprintf("api key creation failed: status=%v body=%s", status, body))
	}

	var keyResp struct {
		Key string `json:"key"`
	}
	if err := json.Unmarshal(body, &keyResp); err != nil {
		panic(err)
	}

	authHeaders := map[string]string{"X-API-Key": keyResp.Key}

	status, body = postJSON("/api/auth",
		map[string]string{"name": fmt.Sprintf("bench_machine_%v", index)}, authHeaders)
	if status != http.StatusOK {
		panic(fmt.Sprintf("machine auth failed: status=%v body=%s", status, body))
	}

	var authResp struct {
		MachineID uint `json:"machine_id"`
	}
	if err := json.Unmarshal(body, &authResp); err != nil {
		panic(err)
	}

	status, body = postJSON("/api/peripherals", map[string]any{
		"machine_id": authResp.MachineID,
		"peripherals": []map[string]string{
			{"name": fmt.Sprintf("chest_%v", index), "type": "inventory", "location": "left"},
		},
	}, authHeaders)
	if status != http.StatusOK {
		panic(fmt.Sprintf("peripheral report failed: status=%v body=%s", status, body))
	}

	return &machineSession{apiKey: keyResp.Key, machineID: authResp.MachineID}
}

func doAction(session *machineSession) {
	actions := []func(){
		genPollCommandsAction(session),
		genGetRoutesAction(session),
		genPostStatusAction(session),
	}
	actionNames := []string{
		"PollCommands",
		"GetRoutes",
		"PostStatus",
	}
	rnd.Shuffle(len(actions), func(i, j int) {
		actions[i], actions[j] = actions[j], actions[i]
		actionNames[i], actionNames[j] = actionNames[j], actionNames[i]
	})
	for index, action := range actions {
		action()
		fmt.Printf("\rexecuted action %v for machine %v", actionNames[index], session.machineID)
		time.Sleep(time.Duration(100+rnd.Int31n(1000)) * time.Millisecond)
	}
}

func getWithKey(session *machineSession, path string) {
	req, _ := http.NewRequest("GET",
		fmt.Sprintf("http://%s%s?machine_id=%v", httpHostPort, path, session.machineID), nil)
	req.Header.Set("X-API-Key", session.apiKey)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Printf("\nerror: %v\n", err)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		fmt.Printf("\nresponse status code != 200: %v\n", resp)
	}
}

func genPollCommandsAction(session *machineSession) func() {
	return func() {
		getWithKey(session, "/api/commands")
	}
}

func genGetRoutesAction(session *machineSession) func() {
	return func() {
		getWithKey(session, "/api/routes")
	}
}

func genPostStatusAction(session *machineSession) func() {
	return func() {
		status := "online"
		if rnd.Int31n(100000)%2 == 0 {
			status = "offline"
		}
		code, body := postJSON("/api/status", map[string]any{
			"machine_id": session.machineID,
			"status":     status,
		}, map[string]string{"X-API-Key": session.apiKey})
		if code != http.StatusOK {
			fmt.Printf("\nstatus update failed: status=%v body=%s\n", code, body)
		}
	}
}
