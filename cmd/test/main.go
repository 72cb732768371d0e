package main

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/nyzbk/insta-carousel-v2/internal/api"
	"github.com/nyzbk/insta-carousel-v2/internal/models"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorCyan   = "\033[36m"
)

type options struct {
	topic  string
	slides int
	cta    string
	token  string
	chatID string
	outDir string
}

type TestClient struct {
	client    *resty.Client
	opts      options
	sessionID string
}

func NewTestClient(baseURL string, opts options) *TestClient {
	return &TestClient{
		client: resty.New().
			SetBaseURL(strings.TrimRight(baseURL, "/")).
			SetTimeout(2 * time.Minute),
		opts: opts,
	}
}

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the carousel service")
	testType := flag.String("test", "all", "Test type: all, health, designs, session, generate, export, telegram")
	topic := flag.String("topic", "Как перестать бояться", "Topic for content generation")
	slides := flag.Int("slides", 3, "Number of content slides")
	cta := flag.String("cta", "ГАЙД", "CTA keyword")
	token := flag.String("token", "", "Telegram bot token (telegram test)")
	chatID := flag.String("chat", "", "Telegram chat id (telegram test)")
	outDir := flag.String("out", "", "Directory to save exported PNG/ZIP files")
	flag.Parse()

	client := NewTestClient(*baseURL, options{
		topic:  *topic,
		slides: *slides,
		cta:    *cta,
		token:  *token,
		chatID: *chatID,
		outDir: *outDir,
	})

	printHeader("Carousel Service - Smoke Tests")
	fmt.Printf("%sBase URL: %s%s\n\n", colorCyan, *baseURL, colorReset)

	single := map[string]func() bool{
		"health":   client.testHealthCheck,
		"designs":  client.testDesigns,
		"session":  client.testSession,
		"generate": client.withSession(client.testGenerate),
		"export":   client.withSession(client.testExport),
		"telegram": client.withSession(client.testTelegram),
	}

	switch *testType {
	case "all":
		client.runAllTests()
	default:
		fn, ok := single[*testType]
		if !ok {
			printError(fmt.Sprintf("Unknown test type: %s", *testType))
			fmt.Println("\nAvailable tests: all, health, designs, session, generate, export, telegram")
			os.Exit(1)
		}
		if !fn() {
			os.Exit(1)
		}
	}
}

func (tc *TestClient) runAllTests() {
	tests := []struct {
		name string
		fn   func() bool
	}{
		{"Health Check", tc.testHealthCheck},
		{"Designs", tc.testDesigns},
		{"Session", tc.testSession},
		{"Generation", tc.testGenerate},
		{"Export", tc.testExport},
	}
	if tc.opts.token != "" && tc.opts.chatID != "" {
		tests = append(tests, struct {
			name string
			fn   func() bool
		}{"Telegram", tc.testTelegram})
	}

	passed := 0
	failed := 0

	for _, test := range tests {
		if test.fn() {
			passed++
		} else {
			failed++
		}
		fmt.Println()
	}

	printHeader("Test Summary")
	fmt.Printf("%sPassed: %d%s\n", colorGreen, passed, colorReset)
	fmt.Printf("%sFailed: %d%s\n", colorRed, failed, colorReset)
	fmt.Printf("Total: %d\n", passed+failed)

	if failed > 0 {
		os.Exit(1)
	}
}

// withSession creates a session first when the test is run on its own.
func (tc *TestClient) withSession(fn func() bool) func() bool {
	return func() bool {
		if tc.sessionID == "" && !tc.testSession() {
			return false
		}
		fmt.Println()
		return fn()
	}
}

func (tc *TestClient) testHealthCheck() bool {
	printTestHeader("Testing Health Check Endpoint")
	fmt.Println("GET /health")

	resp, err := tc.client.R().Get("/health")
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	if resp.StatusCode() != 200 {
		printError(fmt.Sprintf("Expected status 200, got %d", resp.StatusCode()))
		return false
	}
	if resp.String() != "OK" {
		printError(fmt.Sprintf("Expected body 'OK', got '%s'", resp.String()))
		return false
	}

	printSuccess("Health check passed")
	return true
}

func (tc *TestClient) testDesigns() bool {
	printTestHeader("Testing Designs Endpoint")
	fmt.Println("GET /api/designs")

	var out struct {
		Designs []api.DesignInfo `json:"designs"`
	}
	resp, err := tc.client.R().SetResult(&out).Get("/api/designs")
	if !checkResponse(resp, err, 200) {
		return false
	}
	if len(out.Designs) != len(models.Designs()) {
		printError(fmt.Sprintf("Expected %d designs, got %d", len(models.Designs()), len(out.Designs)))
		return false
	}

	printSuccess("Designs listed")
	printJSON(resp.Body())
	return true
}

func (tc *TestClient) testSession() bool {
	printTestHeader("Testing Session Creation")
	fmt.Println("POST /api/sessions")

	var out api.SessionResponse
	resp, err := tc.client.R().SetResult(&out).Post("/api/sessions")
	if !checkResponse(resp, err, 201) {
		return false
	}
	if out.ID == "" || out.State.Content == nil {
		printError("Session response is missing id or preview content")
		return false
	}
	tc.sessionID = out.ID

	printSuccess(fmt.Sprintf("Session %s created with %d preview slides", out.ID, len(out.Slides)))
	return true
}

func (tc *TestClient) sessionPath(suffix string) string {
	return "/api/sessions/" + tc.sessionID + suffix
}

func (tc *TestClient) testGenerate() bool {
	printTestHeader("Testing Content Generation")
	path := tc.sessionPath("/content")
	fmt.Printf("POST %s\n", path)
	fmt.Printf("%sTopic:%s %s  %sSlides:%s %d  %sCTA:%s %s\n\n",
		colorCyan, colorReset, tc.opts.topic,
		colorCyan, colorReset, tc.opts.slides,
		colorCyan, colorReset, tc.opts.cta)

	var out api.SessionResponse
	start := time.Now()
	resp, err := tc.client.R().
		SetBody(api.ContentRequest{Topic: tc.opts.topic, SlideCount: tc.opts.slides, CTAKeyword: tc.opts.cta}).
		SetResult(&out).
		Post(path)
	if !checkResponse(resp, err, 200) {
		return false
	}

	content := out.State.Content
	if content == nil || len(content.ContentPages) != tc.opts.slides {
		printError("Generated content has the wrong number of pages")
		return false
	}
	want := fmt.Sprintf("!! Напиши \"%s\" в комменты", tc.opts.cta)
	if content.CallToActionPage.Title != want {
		printError(fmt.Sprintf("Expected CTA title %q, got %q", want, content.CallToActionPage.Title))
		return false
	}

	printSuccess(fmt.Sprintf("Carousel generated in %s", time.Since(start).Round(time.Millisecond)))
	fmt.Printf("\n%sHook:%s %s\n", colorGreen, colorReset, content.FirstPageTitle)
	fmt.Println(strings.Repeat("=", 80))
	for i, p := range content.ContentPages {
		fmt.Printf("%d. %s\n   %s\n", i+1, p.Title, p.IntroParagraph)
	}
	fmt.Println(strings.Repeat("=", 80))
	return true
}

func (tc *TestClient) testExport() bool {
	printTestHeader("Testing Export")

	path := tc.sessionPath("/slides/0/png")
	fmt.Printf("GET %s\n", path)
	resp, err := tc.client.R().Get(path)
	if !checkResponse(resp, err, 200) {
		return false
	}
	if !bytes.HasPrefix(resp.Body(), []byte("\x89PNG")) {
		printError("Slide export is not a PNG")
		return false
	}
	tc.save("slide-1.png", resp.Body())

	path = tc.sessionPath("/carousel.zip")
	fmt.Printf("GET %s\n", path)
	resp, err = tc.client.R().Get(path)
	if !checkResponse(resp, err, 200) {
		return false
	}
	zr, err := zip.NewReader(bytes.NewReader(resp.Body()), int64(len(resp.Body())))
	if err != nil {
		printError(fmt.Sprintf("Invalid archive: %v", err))
		return false
	}
	for i, f := range zr.File {
		if f.Name != fmt.Sprintf("slide-%d.png", i+1) {
			printError(fmt.Sprintf("Unexpected archive entry %q at %d", f.Name, i))
			return false
		}
	}
	tc.save("carousel.zip", resp.Body())

	printSuccess(fmt.Sprintf("Exported PNG and archive with %d slides", len(zr.File)))
	return true
}

func (tc *TestClient) testTelegram() bool {
	printTestHeader("Testing Telegram Upload")
	if tc.opts.token == "" || tc.opts.chatID == "" {
		printError("Token and chat id are required. Use -token and -chat flags")
		return false
	}

	path := tc.sessionPath("/telegram")
	fmt.Printf("POST %s\n", path)
	resp, err := tc.client.R().
		SetBody(api.TelegramRequest{Token: tc.opts.token, ChatID: tc.opts.chatID}).
		Post(path)
	if !checkResponse(resp, err, 200) {
		return false
	}

	printSuccess("Carousel sent to Telegram")
	return true
}

func (tc *TestClient) save(name string, data []byte) {
	if tc.opts.outDir == "" {
		return
	}
	if err := os.MkdirAll(tc.opts.outDir, 0o755); err != nil {
		printError(fmt.Sprintf("Cannot create %s: %v", tc.opts.outDir, err))
		return
	}
	dst := filepath.Join(tc.opts.outDir, name)
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		printError(fmt.Sprintf("Cannot write %s: %v", dst, err))
		return
	}
	fmt.Printf("%sSaved:%s %s\n", colorYellow, colorReset, dst)
}

func checkResponse(resp *resty.Response, err error, want int) bool {
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	if resp.StatusCode() != want {
		printError(fmt.Sprintf("Expected status %d, got %d", want, resp.StatusCode()))
		printJSON(resp.Body())
		return false
	}
	return true
}

func printHeader(text string) {
	fmt.Printf("\n%s%s%s\n", colorBlue, strings.Repeat("=", len(text)+4), colorReset)
	fmt.Printf("%s= %s =%s\n", colorBlue, text, colorReset)
	fmt.Printf("%s%s%s\n\n", colorBlue, strings.Repeat("=", len(text)+4), colorReset)
}

func printTestHeader(text string) {
	fmt.Printf("%s[TEST] %s%s\n", colorCyan, text, colorReset)
	fmt.Println(strings.Repeat("-", 80))
}

func printSuccess(text string) {
	fmt.Printf("%s✓ %s%s\n", colorGreen, text, colorReset)
}

func printError(text string) {
	fmt.Printf("%s✗ %s%s\n", colorRed, text, colorReset)
}

func printJSON(data []byte) {
	var prettyJSON bytes.Buffer
	if err := json.Indent(&prettyJSON, data, "", "  "); err == nil {
		fmt.Printf("\n%sResponse:%s\n%s\n", colorYellow, colorReset, prettyJSON.String())
	}
}
