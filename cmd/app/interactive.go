package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/prasetyowira/qrgen/constant"
	"github.com/prasetyowira/qrgen/domain/generator"
	"github.com/prasetyowira/qrgen/infrastructure/render"
)

// promptRequest collects a fully populated generation request from the
// user before the pipeline is ever invoked. Invalid answers fall back to
// the documented defaults, mirroring the flag surface.
func promptRequest(r io.Reader, defaultOutputDir string) (generator.Request, string, error) {
	scanner := bufio.NewScanner(r)

	fmt.Println("\nQR Code Generator - Interactive Mode")
	fmt.Println("----------------------------------")

	var req generator.Request

	for {
		data, err := prompt(scanner, "Enter data to encode (text/URL): ")
		if err != nil {
			return req, "", err
		}
		if strings.TrimSpace(data) != "" {
			req.Data = data
			break
		}
		fmt.Println("Error: Data cannot be empty. Please try again.")
	}

	filename, err := prompt(scanner, "Enter output filename (optional, press Enter to auto-generate): ")
	if err != nil {
		return req, "", err
	}
	req.Filename = filename

	outputDir, err := prompt(scanner, fmt.Sprintf("Enter output directory (default: %s): ", defaultOutputDir))
	if err != nil {
		return req, "", err
	}
	if outputDir == "" {
		outputDir = defaultOutputDir
	}

	versionStr, err := prompt(scanner, "QR version (1-40, optional, press Enter for auto): ")
	if err != nil {
		return req, "", err
	}
	if v, convErr := strconv.Atoi(versionStr); convErr == nil && v >= 1 && v <= 40 {
		req.Version = v
	}

	level, err := prompt(scanner, "Error correction (L/M/Q/H, default: L): ")
	if err != nil {
		return req, "", err
	}
	level = strings.ToUpper(level)
	if level != "L" && level != "M" && level != "Q" && level != "H" {
		level = constant.DefaultErrorCorrection
	}
	req.ErrorCorrection = level

	req.BoxSize = promptInt(scanner, "Box size in pixels (default: 10): ", constant.DefaultBoxSize)
	req.Border = promptInt(scanner, "Border size in boxes (default: 4): ", constant.DefaultBorder)

	styledAnswer, err := prompt(scanner, "Create styled QR code? (y/N): ")
	if err != nil {
		return req, "", err
	}
	styledAnswer = strings.ToLower(styledAnswer)
	req.Styled = styledAnswer == "y" || styledAnswer == "yes"

	if req.Styled {
		fmt.Println("\nStyling Options:")

		fmt.Printf("Available drawer styles: %v\n", render.DrawerNames())
		drawer, err := prompt(scanner, "Module drawer style (default: rounded): ")
		if err != nil {
			return req, "", err
		}
		drawer = strings.ToLower(drawer)
		if !contains(render.DrawerNames(), drawer) {
			drawer = constant.DefaultDrawerStyle
		}
		req.DrawerStyle = drawer

		fmt.Printf("Available color masks: %v\n", render.MaskNames())
		mask, err := prompt(scanner, "Color mask style (default: radial): ")
		if err != nil {
			return req, "", err
		}
		mask = strings.ToLower(mask)
		if !contains(render.MaskNames(), mask) {
			mask = constant.DefaultColorMask
		}
		req.ColorMask = mask

		if mask == "solid" {
			fg, err := prompt(scanner, "Foreground color (default: black): ")
			if err != nil {
				return req, "", err
			}
			req.ForegroundColor = strings.ToLower(fg)

			bg, err := prompt(scanner, "Background color (default: white): ")
			if err != nil {
				return req, "", err
			}
			req.BackgroundColor = strings.ToLower(bg)
		}
	}

	return req, outputDir, nil
}

func prompt(scanner *bufio.Scanner, label string) (string, error) {
	fmt.Print(label)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", err
		}
		return "", errors.New("input closed")
	}
	return strings.TrimSpace(scanner.Text()), nil
}

func promptInt(scanner *bufio.Scanner, label string, fallback int) int {
	answer, err := prompt(scanner, label)
	if err != nil {
		return fallback
	}
	if v, convErr := strconv.Atoi(answer); convErr == nil && v >= 0 {
		return v
	}
	return fallback
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
