// types.go
package libreview

// Wire-level schema for the LibreLink Up API. The API is undocumented, so
// every payload is decoded into these explicit structs and validated before
// anything crosses the package boundary.

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Status int        `json:"status"`
	Data   *loginData `json:"data"`
}

type loginData struct {
	AuthTicket *authTicket `json:"authTicket"`
}

type authTicket struct {
	Token    string `json:"token"`
	Expires  int64  `json:"expires"`
	Duration int64  `json:"duration"`
}

type accountResponse struct {
	Status int          `json:"status"`
	Data   *accountData `json:"data"`
}

type accountData struct {
	User *accountUser `json:"user"`
}

type accountUser struct {
	ID string `json:"id"`
}

type connectionsResponse struct {
	Status int          `json:"status"`
	Data   []connection `json:"data"`
}

type connection struct {
	PatientID string `json:"patientId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type graphResponse struct {
	Status int        `json:"status"`
	Data   *graphData `json:"data"`
}

type graphData struct {
	GraphData []measurement `json:"graphData"`
}

// measurement is a single CGM sample as the API ships it. FactoryTimestamp is
// UTC in "M/D/YYYY h:mm:ss AM" form; GlucoseUnits is 1 for mg/dL, 0 for
// mmol/L; TrendArrow is a 1-5 code.
type measurement struct {
	FactoryTimestamp string  `json:"FactoryTimestamp"`
	Timestamp        string  `json:"Timestamp"`
	Type             int     `json:"type"`
	ValueInMgPerDl   float64 `json:"ValueInMgPerDl"`
	TrendArrow       int     `json:"TrendArrow"`
	GlucoseUnits     int     `json:"GlucoseUnits"`
	Value            float64 `json:"Value"`
	IsHigh           bool    `json:"isHigh"`
	IsLow            bool    `json:"isLow"`
}

// apiErrorResponse is the error envelope some endpoints return on failure,
// e.g. {"status":2,"error":{"message":"notAuthenticated"}}.
type apiErrorResponse struct {
	Status int `json:"status"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
}
