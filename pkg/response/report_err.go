package response

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"time"

	"broadcast-srv/pkg/discord"

	"github.com/gin-gonic/gin"
)

// captureStackTrace collects caller frames below the response package.
func captureStackTrace() string {
	pcs := make([]uintptr, DefaultStackTraceDepth)
	n := runtime.Callers(3, pcs)
	frames := runtime.CallersFrames(pcs[:n])

	var sb strings.Builder
	for {
		frame, more := frames.Next()
		sb.WriteString(fmt.Sprintf("%s\n\t%s:%d\n", frame.Function, frame.File, frame.Line))
		if !more {
			break
		}
	}
	return sb.String()
}

func buildBugReport(c *gin.Context, errMsg, stackTrace string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("**%s %s**\n", c.Request.Method, c.Request.URL.Path))
	sb.WriteString(fmt.Sprintf("Error: %s\n", errMsg))
	if stackTrace != "" {
		sb.WriteString("```\n")
		sb.WriteString(stackTrace)
		sb.WriteString("\n```")
	}
	return sb.String()
}

// sendBugReportAsync reports the failure to Discord without blocking the
// request. The report uses a detached context so it survives request
// completion.
func sendBugReportAsync(c *gin.Context, d discord.IDiscord, message string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = d.ReportBug(ctx, message)
	}()
}
