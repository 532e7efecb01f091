// Package domain contains the core types of logbridge.
//
// It has no dependencies on HTTP, the file system or logging.
//
// # Entities
//
//   - [Request] and [Response]: one bridged round trip
//   - [Date]: a calendar day addressing one journal entry
//   - [LogEntry]: the markdown content written for a day
//   - [YearOverview]: which days have entries and which tags and sections
//     they mention, without the contents
package domain
