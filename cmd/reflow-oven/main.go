// Command reflow-oven drives a reflow soldering oven: it samples the
// thermocouple, runs the process state machine and PID, switches the SSR,
// and publishes telemetry to MQTT.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sweeney/reflow-oven/internal/config"
	"github.com/sweeney/reflow-oven/internal/control"
	"github.com/sweeney/reflow-oven/internal/gpio"
	"github.com/sweeney/reflow-oven/internal/pid"
	"github.com/sweeney/reflow-oven/internal/profile"
	"github.com/sweeney/reflow-oven/internal/status"
	"github.com/sweeney/reflow-oven/internal/telemetry"
	"github.com/sweeney/reflow-oven/internal/thermo"
	"github.com/sweeney/reflow-oven/internal/web"
)

func main() {
	configPath := flag.String("config", "/etc/reflow-oven.yaml", "Path to the YAML tuning file")
	poll := flag.Duration("poll", 25*time.Millisecond, "Control loop polling interval")
	broker := flag.String("broker", "", "MQTT broker address (overrides config)")
	httpAddr := flag.String("http", "", "HTTP status address (overrides config, \"off\" disables)")
	serialPort := flag.String("serial", "", "Thermocouple board serial port (overrides config)")
	profilePath := flag.String("profile-file", "", "Persisted profile selection file (overrides config)")
	printState := flag.Bool("print-state", false, "Print current temperature and switch state, then exit")

	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("fatal: %v", err)
	}
	if *broker != "" {
		cfg.Broker = *broker
	}
	if *httpAddr != "" {
		cfg.HTTPAddr = *httpAddr
	}
	if cfg.HTTPAddr == "off" {
		cfg.HTTPAddr = ""
	}
	if *serialPort != "" {
		cfg.Serial.Port = *serialPort
	}
	if *profilePath != "" {
		cfg.ProfilePath = *profilePath
	}

	if err := run(cfg, *poll, *printState); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func run(cfg *config.Config, poll time.Duration, printState bool) error {
	// Initialize GPIO
	io, err := gpio.NewRealIO(cfg.GPIOPins())
	if err != nil {
		return fmt.Errorf("init gpio: %w", err)
	}
	defer io.Close()

	// Initialize thermocouple sensor
	sensor, err := thermo.NewSerialSensor(cfg.Serial.Port, cfg.Serial.BaudRate)
	if err != nil {
		return fmt.Errorf("init sensor: %w", err)
	}
	defer sensor.Close()

	// Print state mode
	if printState {
		// The sensor board streams asynchronously; give it a moment.
		time.Sleep(2 * time.Second)
		reading, err := sensor.Read()
		if err != nil {
			return fmt.Errorf("read sensor: %w", err)
		}
		start, sel, err := io.Read()
		if err != nil {
			return fmt.Errorf("read switches: %w", err)
		}
		fmt.Printf("TC: %.2f°C, fault: %s, start: %s, select: %s\n",
			reading.Temperature, reading.Fault, pressedString(start), pressedString(sel))
		return nil
	}

	// Load the persisted profile selection
	store := profile.NewFileStore(cfg.ProfilePath)
	prof := loadProfile(store)

	// Initialize MQTT
	publisher := telemetry.NewRealPublisher(cfg.Broker)
	defer publisher.Close()

	cc := cfg.ControlConfig()
	ctl := control.New(cc, pid.New(cc.Gains.Preheat.Kp, cc.Gains.Preheat.Ki, cc.Gains.Preheat.Kd), prof)

	// Initialize status tracker (before STARTUP so snapshot is available)
	tracker := status.NewTracker(time.Now(), cc.PlotWidth, status.Config{
		PollMs:     poll.Milliseconds(),
		SampleMs:   cc.SampleInterval.Milliseconds(),
		DebounceMs: cc.DebouncePeriod.Milliseconds(),
		Broker:     cfg.Broker,
		HTTPAddr:   cfg.HTTPAddr,
		SerialPort: cfg.Serial.Port,
	})

	// Publish startup event with full status snapshot
	snap := tracker.Snapshot()
	startupEvent := telemetry.SystemEvent{
		Timestamp:  snap.Now,
		Event:      "STARTUP",
		Retained:   true,
		RawPayload: status.FormatStatusEvent(snap, "STARTUP", ""),
	}
	if err := publisher.PublishSystem(startupEvent); err != nil {
		log.Printf("failed to publish startup event: %v", err)
	} else {
		log.Printf("published startup event")
	}

	// Start HTTP status server
	if cfg.HTTPAddr != "" {
		srv := web.New(cfg.HTTPAddr, tracker)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("http server error: %v", err)
			}
		}()
		defer srv.Shutdown(context.Background())
		log.Printf("http status server listening on %s", cfg.HTTPAddr)
	}

	log.Printf("started: poll=%v sample=%v window=%v broker=%s profile=%s",
		poll, cc.SampleInterval, cc.WindowSize, cfg.Broker, prof)

	ticker := time.NewTicker(poll)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	return runLoop(ctl, io, io, sensor, publisher, publisher, store, tracker, time.Now, ticker.C, sigCh)
}

// loadProfile reads the persisted profile selection, falling back to
// lead-free and writing the default back so the next boot finds it.
func loadProfile(store profile.Store) profile.Profile {
	prof, err := store.Load()
	if err != nil {
		log.Printf("profile load: %v, defaulting to %s", err, profile.LeadFree)
		prof = profile.LeadFree
		if err := store.Save(prof); err != nil {
			log.Printf("profile save: %v", err)
		}
	}
	return prof
}

func runLoop(ctl *control.Controller, sw gpio.Switches, out gpio.Outputs, sensor thermo.Sensor, publisher telemetry.Publisher, mqttStatus telemetry.ConnectionStatus, store profile.Store, tracker *status.Tracker, now func() time.Time, tick <-chan time.Time, sig <-chan os.Signal) error {
	for {
		select {
		case s := <-sig:
			log.Printf("received %v, shutting down", s)
			signalName := "UNKNOWN"
			if s == syscall.SIGINT {
				signalName = "SIGINT"
			} else if s == syscall.SIGTERM {
				signalName = "SIGTERM"
			}
			event := telemetry.SystemEvent{
				Timestamp: now(),
				Event:     "SHUTDOWN",
				Reason:    signalName,
				Retained:  true,
			}
			if tracker != nil {
				if mqttStatus != nil {
					tracker.SetMQTTConnected(mqttStatus.IsConnected())
				}
				snap := tracker.Snapshot()
				event.RawPayload = status.FormatStatusEvent(snap, "SHUTDOWN", signalName)
			}
			if err := publisher.PublishSystem(event); err != nil {
				log.Printf("failed to publish shutdown event: %v", err)
			} else {
				log.Printf("published shutdown event")
			}
			// Never leave the SSR latched on across an exit.
			forceOff(out)
			return nil

		case <-tick:
			t := now()

			raw := control.SwitchNone
			start, sel, err := sw.Read()
			if err != nil {
				log.Printf("switch read error: %v", err)
			} else if start {
				raw = control.SwitchStartStop
			} else if sel {
				raw = control.SwitchProfile
			}

			in := control.TickInput{Now: t, Switch: raw}
			if ctl.SampleDue(t) {
				reading, err := sensor.Read()
				if err != nil {
					log.Printf("sensor read error: %v", err)
					in.Sample = &control.Sample{Temperature: ctl.Input(), Faulted: true}
				} else {
					in.Sample = &control.Sample{
						Temperature: reading.Temperature,
						Faulted:     reading.Fault.Faulted(),
					}
					if in.Sample.Faulted {
						log.Printf("thermocouple fault: %s", reading.Fault)
					}
				}
			}

			res := ctl.Tick(in)

			if res.Header {
				log.Printf("run started: profile=%s", ctl.Profile())
				if err := publisher.PublishRunStart(telemetry.RunStart{
					Timestamp: t,
					Profile:   ctl.Profile().Code(),
				}); err != nil {
					log.Printf("run start publish error: %v", err)
				}
			}

			if res.ProfileChanged {
				log.Printf("profile selected: %s", ctl.Profile())
				if err := store.Save(ctl.Profile()); err != nil {
					log.Printf("profile save: %v", err)
					// Selection still applies for this boot
				}
			}

			if res.Telemetry != nil {
				if err := publisher.PublishSample(telemetry.Sample{
					Timestamp: t,
					Seconds:   res.Telemetry.Seconds,
					Setpoint:  res.Telemetry.Setpoint,
					Input:     res.Telemetry.Input,
					Output:    res.Telemetry.Output,
				}); err != nil {
					log.Printf("sample publish error: %v", err)
				}
			}

			if tracker != nil {
				if res.PlotReset {
					tracker.ResetPlot()
				}
				if res.PlotPoint >= 0 {
					tracker.AppendPlot(res.PlotPoint)
				}
				if res.Display != nil {
					tracker.UpdateFrame(*res.Display)
					if mqttStatus != nil {
						tracker.SetMQTTConnected(mqttStatus.IsConnected())
					}
				}
			}

			if err := out.SetHeater(res.HeaterOn); err != nil {
				log.Printf("heater set error: %v", err)
			}
			if err := out.SetBuzzer(res.BuzzerOn); err != nil {
				log.Printf("buzzer set error: %v", err)
			}
			if err := out.SetLED(res.LEDOn); err != nil {
				log.Printf("led set error: %v", err)
			}
		}
	}
}

func forceOff(out gpio.Outputs) {
	if err := out.SetHeater(false); err != nil {
		log.Printf("heater off error: %v", err)
	}
	if err := out.SetBuzzer(false); err != nil {
		log.Printf("buzzer off error: %v", err)
	}
	if err := out.SetLED(false); err != nil {
		log.Printf("led off error: %v", err)
	}
}

func pressedString(pressed bool) string {
	if pressed {
		return "pressed"
	}
	return "released"
}
