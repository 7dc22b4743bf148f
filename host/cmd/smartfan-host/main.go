// Command smartfan-host talks to the fan controller over a serial
// byte bridge. It polls the device status in the background and takes
// interactive commands on stdin.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"smartfan/host"
	"smartfan/host/serial"
	"smartfan/protocol"
)

func main() {
	device := flag.String("device", "/dev/ttyACM0", "serial device of the link bridge")
	baud := flag.Int("baud", 115200, "serial baud rate")
	pollInterval := flag.Duration("poll-interval", 500*time.Millisecond, "status poll period")
	flag.Parse()

	cfg := serial.DefaultConfig(*device)
	cfg.Baud = *baud

	port, err := serial.Open(cfg)
	if err != nil {
		log.Fatalf("open %s: %v", *device, err)
	}
	defer port.Close()

	client := host.NewClient(host.NewSerialBridge(port))

	fmt.Printf("Connected to %s at %d baud\n", *device, *baud)
	fmt.Println("Commands: status, start, reset, angle <deg>, quit")

	g, ctx := errgroup.WithContext(context.Background())
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g.Go(func() error {
		return pollLoop(ctx, client, *pollInterval)
	})
	g.Go(func() error {
		defer cancel()
		return commandLoop(client)
	})

	if err := g.Wait(); err != nil && err != context.Canceled {
		log.Fatal(err)
	}
}

// pollLoop prints the device status whenever it changes.
func pollLoop(ctx context.Context, client *host.Client, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var last protocol.Status
	seen := false
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			status, err := client.Poll()
			if err != nil {
				return fmt.Errorf("status poll: %w", err)
			}
			if !seen || status != last {
				fmt.Printf("status: %s\n", status)
				last, seen = status, true
			}
		}
	}
}

// commandLoop reads interactive commands until quit or EOF.
func commandLoop(client *host.Client) error {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		var (
			status protocol.Status
			err    error
		)
		switch fields[0] {
		case "status":
			status, err = client.Poll()
		case "start":
			status, err = client.Start()
		case "reset":
			status, err = client.Reset()
		case "angle":
			if len(fields) < 2 {
				fmt.Println("usage: angle <deg>")
				continue
			}
			var deg int
			deg, err = strconv.Atoi(fields[1])
			if err != nil {
				fmt.Printf("bad angle %q\n", fields[1])
				continue
			}
			status, err = client.SetAngle(deg)
		case "quit", "exit":
			return nil
		default:
			fmt.Printf("unknown command %q\n", fields[0])
			continue
		}

		if err != nil {
			fmt.Printf("error: %v\n", err)
			continue
		}
		fmt.Printf("-> %s\n", status)
	}
	return scanner.Err()
}
