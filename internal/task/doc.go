// Package task runs background work off the request path. A bounded
// TaskQueue feeds a WorkerPool; EventTaskHandler turns committed progress
// events into tasks so slow event consumers never delay an API response.
package task
