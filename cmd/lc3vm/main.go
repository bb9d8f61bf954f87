package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/arnegrin/lc3vm/internal/encoding"
	"github.com/arnegrin/lc3vm/internal/machine"
	"github.com/arnegrin/lc3vm/internal/trace"
)

var (
	helpvar  bool
	tracevar bool
	breakvar string
)

const usage = "lc3vm [-trace] [-break addr] image-file"

func init() {
	exe, _ := os.Executable()
	log.SetFlags(0)
	log.SetPrefix(fmt.Sprintf("%s: ", filepath.Base(exe)))
	log.SetOutput(os.Stderr)
}

func init() {
	flag.BoolVar(&helpvar, "help", false, "Displays command usage")
	flag.BoolVar(&tracevar, "trace", false, "Logs each fetched instruction and memory-mapped I/O")
	flag.StringVar(&breakvar, "break", "", "Address (e.g. 0x3000) at which -trace starts logging")
	flag.Parse()
}

func lc3vm() int {
	if helpvar {
		fmt.Println(usage)
		return 0
	}

	args := flag.Args()

	if len(args) != 1 {
		log.Println(usage)
		return 1
	}

	file, err := os.Open(args[0])
	if err != nil {
		log.Println(err)
		return 1
	}
	defer file.Close()

	var mc machine.Machine
	var dh machine.DeviceHandler
	dh.Keyboard = newTerminalKeyboard()
	dh.Display = newTerminalConsole()
	mc.Devices = &dh

	if tracevar {
		from := uint16(0)
		if breakvar != "" {
			from, err = encoding.DecodeHex(breakvar)
			if err != nil {
				log.Println(err)
				return 1
			}
		}

		mc.Tracer = trace.NewLogger(log.New(os.Stderr, "", 0), from)
	}

	if _, err := mc.LoadImage(file); err != nil {
		log.Println(err)
		return 1
	}

	enterRawTerm()
	defer exitRawTerm()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	go func() {
		<-c
		exitRawTerm()
		os.Exit(130)
	}()

	for mc.Running() {
		if err := mc.Step(); err != nil {
			log.Println(err)
			return 2
		}
	}

	return 0
}

func main() {
	os.Exit(lc3vm())
}
