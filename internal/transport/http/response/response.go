package response

// Resp is the envelope of every API reply. Data is an empty object rather
// than null when there is nothing to return.
type Resp struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data any    `json:"data"`
}

func (r Resp) IsOK() bool { return r.Code == CodeOK }

func OK(data any) Resp {
	if data == nil {
		data = struct{}{}
	}
	return Resp{Code: CodeOK, Msg: Message(CodeOK), Data: data}
}

// Error falls back to the default message of code when msg is empty.
func Error(code int, msg string) Resp {
	if msg == "" {
		msg = Message(code)
	}
	return Resp{Code: code, Msg: msg, Data: struct{}{}}
}
