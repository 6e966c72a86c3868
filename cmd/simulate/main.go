// Command simulate drives concurrent booking traffic against a running
// instance and reports success/conflict/error counts with latency
// percentiles. Conflicts are expected: workers deliberately race for the
// same doctors and dates.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"hospital-assistant/config"
	"hospital-assistant/internal/delivery/dto"
	"hospital-assistant/pkg/jwt"
)

type metrics struct {
	total     int64
	success   int64
	conflict  int64
	failed    int64
	mu        sync.Mutex
	latencies []time.Duration
}

func (m *metrics) record(latency time.Duration, status int) {
	atomic.AddInt64(&m.total, 1)
	switch {
	case status == http.StatusCreated:
		atomic.AddInt64(&m.success, 1)
	case status == http.StatusConflict:
		atomic.AddInt64(&m.conflict, 1)
	default:
		atomic.AddInt64(&m.failed, 1)
	}

	m.mu.Lock()
	m.latencies = append(m.latencies, latency)
	m.mu.Unlock()
}

func (m *metrics) percentile(p int) time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.latencies) == 0 {
		return 0
	}
	sorted := make([]time.Duration, len(m.latencies))
	copy(sorted, m.latencies)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	idx := len(sorted) * p / 100
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func main() {
	baseURL := flag.String("url", "http://localhost:8000", "API base URL")
	workers := flag.Int("workers", 10, "concurrent workers")
	bookings := flag.Int("bookings", 20, "booking attempts per worker")
	daysAhead := flag.Int("days", 7, "book within this many days from today")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	jwtService := jwt.NewJWTService(cfg.JWT)

	departments, err := fetchDepartments(*baseURL)
	if err != nil {
		log.Fatalf("failed to fetch departments: %v", err)
	}

	type doctorRef struct{ department, doctor string }
	var doctors []doctorRef
	for department, names := range departments {
		for _, doctor := range names {
			doctors = append(doctors, doctorRef{department, doctor})
		}
	}
	if len(doctors) == 0 {
		log.Fatal("catalog returned no doctors")
	}

	m := &metrics{}
	client := &http.Client{Timeout: 10 * time.Second}
	start := time.Now()

	var wg sync.WaitGroup
	for w := 0; w < *workers; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()

			patientKey := fmt.Sprintf("sim-patient-%d", worker)
			email := gofakeit.Email()
			token, _, err := jwtService.GenerateToken(patientKey, email, gofakeit.Name())
			if err != nil {
				log.Printf("worker %d: token generation failed: %v", worker, err)
				return
			}

			for i := 0; i < *bookings; i++ {
				date := time.Now().AddDate(0, 0, rand.Intn(*daysAhead)+1).Format("2006-01-02")
				target := doctors[rand.Intn(len(doctors))]

				slots, err := fetchSlots(client, *baseURL, target.department, target.doctor, date)
				if err != nil || len(slots) == 0 {
					continue
				}

				req := dto.BookAppointmentRequest{
					PatientName:   gofakeit.Name(),
					PatientAge:    gofakeit.Number(1, 90),
					PatientGender: gofakeit.RandomString([]string{"Male", "Female", "Other"}),
					Department:    target.department,
					Doctor:        target.doctor,
					Date:          date,
					Time:          slots[rand.Intn(len(slots))],
				}

				began := time.Now()
				status, err := book(client, *baseURL, token, &req)
				if err != nil {
					log.Printf("worker %d: booking request failed: %v", worker, err)
					continue
				}
				m.record(time.Since(began), status)
			}
		}(w)
	}
	wg.Wait()

	elapsed := time.Since(start)
	fmt.Printf("\n=== Booking simulation ===\n")
	fmt.Printf("workers:   %d\n", *workers)
	fmt.Printf("elapsed:   %s\n", elapsed.Round(time.Millisecond))
	fmt.Printf("total:     %d\n", atomic.LoadInt64(&m.total))
	fmt.Printf("success:   %d\n", atomic.LoadInt64(&m.success))
	fmt.Printf("conflict:  %d\n", atomic.LoadInt64(&m.conflict))
	fmt.Printf("failed:    %d\n", atomic.LoadInt64(&m.failed))
	fmt.Printf("p50:       %s\n", m.percentile(50).Round(time.Microsecond))
	fmt.Printf("p95:       %s\n", m.percentile(95).Round(time.Microsecond))
}

func fetchDepartments(baseURL string) (map[string][]string, error) {
	resp, err := http.Get(baseURL + "/api/v1/departments")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, err
	}
	var data dto.DepartmentListResponse
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, err
	}
	return data.Departments, nil
}

func fetchSlots(client *http.Client, baseURL, department, doctor, date string) ([]string, error) {
	req, err := http.NewRequest(http.MethodGet, baseURL+"/api/v1/appointments/slots", nil)
	if err != nil {
		return nil, err
	}
	q := req.URL.Query()
	q.Set("department", department)
	q.Set("doctor", doctor)
	q.Set("date", date)
	req.URL.RawQuery = q.Encode()

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("slots request returned %d", resp.StatusCode)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, err
	}
	var data dto.AvailableSlotsResponse
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, err
	}
	return data.Slots, nil
}

func book(client *http.Client, baseURL, token string, booking *dto.BookAppointmentRequest) (int, error) {
	body, err := json.Marshal(booking)
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequest(http.MethodPost, baseURL+"/api/v1/appointments", bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	return resp.StatusCode, nil
}
