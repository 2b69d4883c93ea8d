package handler // declare the package name; contains HTTP handlers

import (
    "net/http" // net/http provides status codes and response helpers

    "github.com/labstack/echo/v4" // echo is the web framework used for this project
)

// Health is the liveness endpoint used by load balancers.  It reports the
// number of drafts currently open when a counter is supplied.
func Health(open func() int) echo.HandlerFunc {
    return func(c echo.Context) error {
        if open == nil {
            return c.String(http.StatusOK, "ok")
        }
        return c.JSON(http.StatusOK, echo.Map{"status": "ok", "open_drafts": open()})
    }
}
