/*
 * Copyright 2025 The Coedit Authors. All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package logging

import (
	"context"
)

// loggerKey identifies the logger carried in a context. Each broker event
// travels with the logger of the connection that produced it.
type loggerKey struct{}

// With attaches the given logger to the context. Read loops call this once
// per connection so every event handled downstream logs under that
// connection's named logger.
func With(ctx context.Context, logger Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// From extracts the logger attached to the context, falling back to the
// default logger when none was attached.
func From(ctx context.Context) Logger {
	if ctx == nil {
		return DefaultLogger()
	}

	if logger, ok := ctx.Value(loggerKey{}).(Logger); ok {
		return logger
	}

	return DefaultLogger()
}
