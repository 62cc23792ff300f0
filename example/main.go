// Example opens a pair of auxiliary windows with the full widget set.
//
// Prerequisites:
//
//	Install devbox: https://www.jetify.com/devbox
//	devbox shell              # enter the dev environment (provides Go + OpenGL/X11 headers)
//	go run ./example/         # run this example
//
// The first window shows a button, a text field and a slider; the
// second fills a scroll container with rows. Closing both windows, or
// pressing Escape in each, exits the program.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/auxwin/gui"
)

func main() {
	gui.SetVerbose(true)

	controls := gui.Open("Controls", 420, 320, func(w *gui.Window) {
		field := gui.NewTextField(20, 20, 380, 36)
		field.SetOnSubmit(func(s string) {
			fmt.Println("submitted:", s)
		})
		w.AddWidget(field)

		w.AddWidget(gui.NewSlider(20, 110, 380, 24, "Volume", 0.5))

		w.AddWidget(gui.NewButton(20, 160, 180, 40, "Print Text", func() {
			fmt.Println("field contains:", field.Text())
		}))
		w.AddWidget(gui.NewButton(220, 160, 180, 40, "Clear", func() {
			field.SetText("")
		}))
	})

	list := gui.Open("Items", 320, 400, func(w *gui.Window) {
		sc := gui.NewScrollContainer(10, 10, 300, 380)
		for i := 0; i < 50; i++ {
			n := i
			sc.AddChild(gui.NewButton(10, i*45, 260, 40,
				fmt.Sprintf("Item %d", n), func() {
					fmt.Println("picked item", n)
				}))
		}
		w.AddWidget(sc)
	})

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	// Give the render threads a beat to bring the windows up before
	// polling for both being closed.
	time.Sleep(time.Second)
	for controls.IsOpen() || list.IsOpen() {
		select {
		case <-interrupt:
			gui.Shutdown()
			return
		case <-time.After(200 * time.Millisecond):
		}
	}
}
