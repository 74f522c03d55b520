// Copyright 2026 The Slackr Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"strings"
)

// EncodeImageFile reads an image file and encodes it as the data URL
// the backend stores for message attachments and profile photos. The
// MIME type is sniffed from the file contents, not the extension.
func EncodeImageFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading image %s: %w", path, err)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("image %s is empty", path)
	}

	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("%s is not an image (detected %s)", path, contentType)
	}

	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
