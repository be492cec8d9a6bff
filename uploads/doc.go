// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package uploads stores reseller-uploaded M3U playlists on disk and
// serves them back at /uploads/. File names are random UUIDs with the
// original extension preserved; the returned relative URL is what gets
// written into a device's m3u_url field.
package uploads
