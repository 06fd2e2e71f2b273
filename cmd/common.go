/*
Copyright © 2025 Termweave Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"

	"github.com/termweave/termweave/internal/translator"
)

// buildService constructs the translation service adapter from CLI parameters.
func buildService(name, credentials, mymemoryEmail, libreURL, libreKey string) (translator.Service, error) {
	switch name {
	case "google":
		return translator.NewGoogleService(credentials), nil
	case "mymemory":
		return translator.NewMyMemoryService(mymemoryEmail), nil
	case "libretranslate":
		if libreURL == "" {
			return nil, fmt.Errorf("libretranslate requires --libre-url")
		}
		return translator.NewLibreTranslateService(libreURL, libreKey), nil
	default:
		return nil, fmt.Errorf("unknown service: %s (available: google, mymemory, libretranslate)", name)
	}
}
