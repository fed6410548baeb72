package thermo

import (
	"bufio"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.bug.st/serial"
)

// DefaultBaudRate is the interface board's standard baud rate.
const DefaultBaudRate = 115200

// maxReadingAge is how old the latest line may be before Read reports the
// link as dead rather than returning stale data.
const maxReadingAge = 5 * time.Second

// SerialSensor reads a MAX31856 thermocouple interface board that streams
// one "temperature,faultHex" line per conversion, e.g. "154.25,00". A
// background goroutine keeps the latest reading; Read never blocks on the
// serial line.
type SerialSensor struct {
	port serial.Port

	mu     sync.Mutex
	latest Reading
	at     time.Time
	have   bool
}

// NewSerialSensor opens the serial port and starts the reader goroutine.
// A baudRate of 0 selects DefaultBaudRate.
func NewSerialSensor(portName string, baudRate int) (*SerialSensor, error) {
	if baudRate == 0 {
		baudRate = DefaultBaudRate
	}
	port, err := serial.Open(portName, &serial.Mode{BaudRate: baudRate})
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %w", portName, err)
	}

	s := &SerialSensor{port: port}
	go s.scan()
	return s, nil
}

// Read returns the most recent reading from the board.
func (s *SerialSensor) Read() (Reading, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.have {
		return Reading{}, errors.New("no reading received yet")
	}
	if age := time.Since(s.at); age > maxReadingAge {
		return Reading{}, fmt.Errorf("last reading is %v old", age.Truncate(time.Millisecond))
	}
	return s.latest, nil
}

// Close closes the serial port; the reader goroutine exits on the
// resulting read error.
func (s *SerialSensor) Close() error {
	return s.port.Close()
}

func (s *SerialSensor) scan() {
	scanner := bufio.NewScanner(s.port)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		r, err := parseReading(line)
		if err != nil {
			log.Printf("thermo: bad line %q: %v", line, err)
			continue
		}
		s.mu.Lock()
		s.latest = r
		s.at = time.Now()
		s.have = true
		s.mu.Unlock()
	}
	if err := scanner.Err(); err != nil {
		log.Printf("thermo: serial read stopped: %v", err)
	}
}

// parseReading parses one board line: a decimal temperature and a two-digit
// hex fault register, comma separated.
func parseReading(line string) (Reading, error) {
	parts := strings.Split(line, ",")
	if len(parts) != 2 {
		return Reading{}, fmt.Errorf("expected 2 fields, got %d", len(parts))
	}

	temp, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Reading{}, fmt.Errorf("invalid temperature: %w", err)
	}

	fault, err := strconv.ParseUint(strings.TrimSpace(parts[1]), 16, 8)
	if err != nil {
		return Reading{}, fmt.Errorf("invalid fault register: %w", err)
	}

	return Reading{Temperature: temp, Fault: FaultMask(fault)}, nil
}
