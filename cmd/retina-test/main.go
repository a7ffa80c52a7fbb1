// Retina verification - opens the real camera and polls a few reads.
//
// Standalone check that the capture path works on this host before wiring
// the MCP client.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/teslashibe/go-retina/internal/config"
	"github.com/teslashibe/go-retina/internal/log"
	"github.com/teslashibe/go-retina/pkg/retina"
)

func main() {
	interval := flag.Float64("interval", 1.0, "capture interval in seconds")
	attempts := flag.Int("attempts", 3, "number of read attempts")
	flag.Parse()

	log.Init("warn")

	fmt.Println("👁️  Retina Test")
	fmt.Println("===============")

	cfg := retina.DefaultConfig()
	cfg.Devices = retina.DevicesFromIDs(config.CameraIDs([]int{0, 1, 2, 3}))
	cfg.BaseInterval = time.Duration(*interval * float64(time.Second))

	eye, err := retina.New(cfg)
	if err != nil {
		fmt.Printf("❌ Config: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting retina (interval: %.1fs)...\n", *interval)
	if err := eye.Start(); err != nil {
		fmt.Printf("❌ Startup: %v\n", err)
		os.Exit(1)
	}
	defer eye.Stop()

	fmt.Println("Waiting for camera warm-up (5s)...")
	time.Sleep(5 * time.Second)

	for i := 1; i <= *attempts; i++ {
		fmt.Printf("📷 Reading eye (attempt %d)... ", i)
		obs := eye.Read()
		fmt.Printf("status=%s\n", obs.Status)

		if obs.Status == retina.StatusSight {
			jpeg, err := eye.Encode(obs.Frame)
			if err != nil {
				fmt.Printf("❌ Encode: %v\n", err)
				break
			}
			fmt.Printf("✅ Frame captured! %d KB, brightness=%.2f motion=%.2f (cam %d)\n",
				len(jpeg)/1024, obs.Qualia.Brightness, obs.Qualia.Motion, obs.Camera)
			break
		}
		time.Sleep(1 * time.Second)
	}

	fmt.Println("Stopping retina...")
	fmt.Println("👋 Test complete")
}
