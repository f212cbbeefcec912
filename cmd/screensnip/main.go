package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	"screensnip/capture"
	"screensnip/clipboard"
	"screensnip/config"
	"screensnip/engine"
	"screensnip/eventloop"
	"screensnip/history"
	"screensnip/logutil"
	"screensnip/notification"
	"screensnip/overlay"
	"screensnip/pipeline"
	"screensnip/popup"
	"screensnip/resultcache"
	"screensnip/screenshot"
	"screensnip/singleinstance"
	"screensnip/storage"
	"screensnip/tray"
	"screensnip/viewer"
)

// normalizeFlagDashes maps GNU-style --run-once flags to Go's single dash.
func normalizeFlagDashes() {
	for i := 1; i < len(os.Args); i++ {
		arg := os.Args[i]
		switch {
		case strings.HasPrefix(arg, "--run-once"):
			os.Args[i] = arg[1:]
		}
	}
}

func main() {
	// DPI awareness must be set before any window or metric query.
	enableDPIAwareness()

	// The GUI loop owns the main thread.
	runtime.LockOSThread()

	runOnce := flag.Bool("run-once", false, "Capture once, copy the extracted text to the clipboard, and exit")
	runOnceStd := flag.Bool("run-once-std", false, "Capture once, write the extracted text to stdout, and exit")
	normalizeFlagDashes()
	flag.Parse()

	if *runOnce || *runOnceStd {
		runOnceMode(*runOnceStd)
		return
	}

	// Load .env early so SCREENSNIP_PORT_* applies to the pre-flight check.
	settings, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logutil.Setup(settings.EnableFileLogging)

	// Pre-flight: claim the resident port before bringing up any UI. If it
	// is taken, another resident exists and we bow out.
	startPort, _ := singleinstance.PortRange()
	addr := fmt.Sprintf("127.0.0.1:%d", startPort)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		log.Printf("Pre-flight: port %d busy, resident already exists", startPort)
		fmt.Printf("screensnip is already running on port %d\n", startPort)
		os.Exit(1)
	}
	_ = listener.Close()
	log.Printf("Pre-flight: port %d free, claiming residency", startPort)

	if err := clipboard.Init(); err != nil {
		log.Fatalf("Failed to initialize clipboard: %v", err)
	}

	shotDir, err := storage.ScreenshotDir()
	if err != nil {
		log.Fatalf("Failed to prepare screenshot directory: %v", err)
	}

	store := config.NewStore(settings)
	v := viewer.New()
	pipe := buildPipeline(store, v, shotDir)
	v.SetReprocess(func(imagePath, action string) {
		if err := pipe.ProcessImage(context.Background(), imagePath, action); err != nil {
			log.Printf("Reprocess failed: %v", err)
		}
	})

	log.Printf("ScreenSnip initialized")
	log.Printf("Primary action: %s, extractor: %s", settings.PrimaryAction, settings.Extractor)
	log.Printf("Hotkey: %s, view hotkey: %s", settings.Hotkey, settings.ViewHotkey)

	loop := eventloop.New(pipe, overlay.Func(v.SelectRegion))
	loop.SetDefaultTooltip(fmt.Sprintf("ScreenSnip - Press %s to capture", settings.Hotkey))
	loop.RegisterHotkeys(settings.Hotkey, settings.ViewHotkey)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
		<-ch
		cancel()
	}()

	go tray.Run(tray.Handlers{
		CaptureNow:     loop.PostCapture,
		ShowLastResult: func() { loop.PostView(0) },
		Quit:           cancel,
	})

	go func() {
		if err := loop.Run(ctx); err != nil && ctx.Err() == nil {
			log.Printf("Event loop stopped: %v", err)
		}
		v.Quit()
		tray.Quit()
	}()

	// Blocks until Quit; must stay on the locked main thread.
	v.Run()
}

// buildPipeline wires the capture machinery to the configured engines.
func buildPipeline(store *config.Store, presenter pipeline.Presenter, shotDir string) *pipeline.Pipeline {
	settings := store.Snapshot()
	var extractor engine.TextService
	switch settings.Extractor {
	case config.ExtractorTesseract:
		extractor = engine.NewTesseract(tessLang(settings.LangPair[0]), tessLang(settings.LangPair[1]))
	default:
		extractor = engine.NewRapidOCR(engine.RapidOCRPath(settings.EnginesDir))
	}
	translator := engine.NewLocalTranslator(engine.TranslatorPath(settings.EnginesDir), settings.LangPair)

	return &pipeline.Pipeline{
		Lock:          &capture.Lock{},
		Slot:          &capture.FrameSlot{},
		History:       history.New(history.DefaultCapacity),
		Results:       &resultcache.Cache{},
		Settings:      store,
		Extractor:     extractor,
		Translator:    translator,
		Clipboard:     systemClipboard{},
		Notifier:      toastNotifier{},
		Presenter:     presenter,
		ScreenshotDir: shotDir,
		CopyToDesktop: storage.CopyToDesktop,
	}
}

// runOnceMode delegates the capture to a resident if one exists, otherwise
// runs a single full-screen extraction in-process.
func runOnceMode(outputToStdout bool) {
	settings, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	logutil.Setup(settings.EnableFileLogging)

	ctx := context.Background()
	client := singleinstance.NewClient()
	delegated, text, err := client.TryRunOnce(ctx, outputToStdout)
	if err != nil {
		log.Printf("Delegation error: %v; falling back to standalone", err)
	} else if delegated {
		log.Printf("Delegated to resident")
		if outputToStdout {
			fmt.Print(text)
		}
		return
	}

	if err := runStandaloneOnce(ctx, settings, outputToStdout); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func runStandaloneOnce(ctx context.Context, settings config.Settings, outputToStdout bool) error {
	if err := clipboard.Init(); err != nil {
		return fmt.Errorf("failed to initialize clipboard: %w", err)
	}
	shotDir, err := storage.ScreenshotDir()
	if err != nil {
		return fmt.Errorf("failed to prepare screenshot directory: %w", err)
	}

	// Run-once always extracts; the configured primary action is for the
	// resident's interactive flow.
	settings.PrimaryAction = config.ActionExtract
	store := config.NewStore(settings)
	pipe := buildPipeline(store, headlessPresenter{}, shotDir)

	if !pipe.Lock.TryBegin() {
		return fmt.Errorf("capture already in progress")
	}
	frame, err := screenshot.Capture()
	if err != nil {
		pipe.Lock.End()
		return fmt.Errorf("failed to capture screen: %w", err)
	}
	pipe.Slot.Put(frame)

	region, cancelled, err := overlay.FullScreen().Select(ctx)
	if err != nil || cancelled {
		pipe.Slot.Drop()
		pipe.Lock.End()
		return fmt.Errorf("region selection failed: %v", err)
	}

	if err := pipe.ProcessRegion(ctx, region); err != nil {
		return err
	}
	if outputToStdout {
		res, _ := pipe.Results.Load()
		fmt.Print(res.Original)
	}
	return nil
}

// tessLang maps the two-letter pair codes onto tesseract language names.
func tessLang(code string) string {
	switch code {
	case "zh":
		return "chi_sim"
	case "ja":
		return "jpn"
	case "ko":
		return "kor"
	case "de":
		return "deu"
	case "fr":
		return "fra"
	case "es":
		return "spa"
	case "ru":
		return "rus"
	default:
		return "eng"
	}
}

type systemClipboard struct{}

func (systemClipboard) WriteText(text string) error { return clipboard.WriteText(text) }
func (systemClipboard) WriteImage(png []byte) error { return clipboard.WriteImage(png) }

type toastNotifier struct{}

func (toastNotifier) Notify(title, body string) { notification.Show(title, body) }

// headlessPresenter serves the run-once path, where no windows exist.
type headlessPresenter struct{}

func (headlessPresenter) ProcessingStarted()  { popup.ShowProcessing() }
func (headlessPresenter) ProcessingFinished() { popup.HideProcessing() }

func (headlessPresenter) ShowPreview(imagePath string) {
	log.Printf("Preview requested for %s (headless mode)", imagePath)
}

func (headlessPresenter) ShowResults(res resultcache.Result) {
	log.Printf("Result window requested for %s (headless mode)", res.ImagePath)
}
