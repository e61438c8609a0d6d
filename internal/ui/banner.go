package ui

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/pterm/pterm"
)

const bannerText = `
 ____   _ __   __ ____  ____      _    ____  _____
|  _ \ / \\ \ / // ___||  _ \    / \  |  _ \| ____|
| |_) / _ \\ V /| |  _ | |_) |  / _ \ | | | |  _|
|  __/ ___ \| | | |_| ||  _ <  / ___ \| |_| | |___
|_| /_/   \_\_|  \____||_| \_\/_/   \_\____/|_____|
 salary structure calculator
`

// ColorizeText applies a random two-colour gradient to the input text
func ColorizeText(text string) string {
	source := rand.NewSource(time.Now().UnixNano())
	random := rand.New(source)

	startColor := pterm.NewRGB(uint8(random.Intn(256)), uint8(random.Intn(256)), uint8(random.Intn(256)))
	firstPoint := pterm.NewRGB(uint8(random.Intn(256)), uint8(random.Intn(256)), uint8(random.Intn(256)))

	strs := strings.Split(text, "")
	if len(strs) < 2 {
		return text
	}

	var coloredText strings.Builder
	for i, s := range strs {
		coloredText.WriteString(startColor.Fade(0, float32(len(strs)), float32(i%(len(strs)/2)), firstPoint).Sprint(s))
	}
	return coloredText.String()
}

// PrintBanner displays the application banner
func PrintBanner(silence bool) {
	if !silence {
		fmt.Println(ColorizeText(bannerText))
	}
}
