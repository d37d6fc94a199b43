// Package task holds the task list and keeps it mirrored to a JSON file.
//
// The file (tasks.json by default) is a single array of task objects:
//
//	[
//	  {
//	    "id": 1,
//	    "description": "Write report",
//	    "priority": "High",
//	    "completed": true,
//	    "created_at": "14-03-2026 09:26:53",
//	    "completed_at": "15-03-2026 17:02:11"
//	  }
//	]
//
// # Identifiers
//
// IDs are positions, not stable keys. A new task gets len+1, and deleting a
// task renumbers every remaining task to its 1-based position, so after any
// mutation the IDs are exactly 1..N in list order.
//
// # Validation
//
// Load decodes the file and validates it against the embedded
// tasks.schema.json (JSON Schema draft 2020-12). A file that fails either
// step is reported as a *ParseError and the store starts empty; the broken
// file is left on disk until the next save overwrites it.
//
// # Optional fields
//
//   - "priority" may be missing; it reads as Medium.
//   - "completed_at" is only present on completed tasks; a completed task
//     without it is shown as "N/A".
//
// # File Format
//
// Every mutation rewrites the whole file with 2-space indentation and a
// trailing newline. There is no append or dirty tracking.
package task
