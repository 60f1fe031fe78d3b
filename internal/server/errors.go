// SPDX-License-Identifier: Apache-2.0

package server

import "errors"

var (
	errNoServerAddress = errors.New("no server address is configured")
)
