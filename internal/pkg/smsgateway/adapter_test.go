package smsgateway

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKavenegarSend(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		var gotPath string
		var gotQuery url.Values
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotQuery = r.URL.Query()
			w.Write([]byte(`{"return":{"status":200,"message":"ok"},"entries":[{"messageid":1}]}`))
		}))
		defer srv.Close()

		gw := NewKavenegar(KavenegarConfig{APIKey: "KEY", Sender: "10004321", BaseURL: srv.URL})
		err := gw.Send(ctx, "+989123456789", "Your verification code is 123456", "123456")

		assert.NoError(t, err)
		assert.Equal(t, "/v1/KEY/sms/send.json", gotPath)
		assert.Equal(t, "+989123456789", gotQuery.Get("receptor"))
		assert.Equal(t, "Your verification code is 123456", gotQuery.Get("message"))
		assert.Equal(t, "10004321", gotQuery.Get("sender"))
	})

	t.Run("ProviderRejection", func(t *testing.T) {
		// HTTP 200 with a non-200 envelope status is still a failure.
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`{"return":{"status":418,"message":"invalid receptor"}}`))
		}))
		defer srv.Close()

		gw := NewKavenegar(KavenegarConfig{APIKey: "KEY", BaseURL: srv.URL})

		assert.Error(t, gw.Send(ctx, "+989123456789", "msg", "123456"))
	})

	t.Run("MalformedBody", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`<html>gateway timeout</html>`))
		}))
		defer srv.Close()

		gw := NewKavenegar(KavenegarConfig{APIKey: "KEY", BaseURL: srv.URL})

		assert.Error(t, gw.Send(ctx, "+989123456789", "msg", "123456"))
	})

	t.Run("MissingAPIKey", func(t *testing.T) {
		gw := NewKavenegar(KavenegarConfig{})

		assert.Error(t, gw.Send(ctx, "+989123456789", "msg", "123456"))
	})
}

func TestSMSIRSend(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		var gotKey string
		var gotReq smsirRequest
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotKey = r.Header.Get("x-api-key")
			body, _ := io.ReadAll(r.Body)
			require.NoError(t, json.Unmarshal(body, &gotReq))
			w.Write([]byte(`{"status":1,"message":"ok"}`))
		}))
		defer srv.Close()

		gw := NewSMSIR(SMSIRConfig{APIKey: "KEY", TemplateID: 77, BaseURL: srv.URL})
		err := gw.Send(ctx, "+989123456789", "ignored free text", "654321")

		assert.NoError(t, err)
		assert.Equal(t, "KEY", gotKey)
		assert.Equal(t, "+989123456789", gotReq.Mobile)
		assert.Equal(t, 77, gotReq.TemplateID)
		require.Len(t, gotReq.Parameters, 1)
		assert.Equal(t, "Code", gotReq.Parameters[0].Name)
		assert.Equal(t, "654321", gotReq.Parameters[0].Value)
	})

	t.Run("ProviderRejection", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`{"status":101,"message":"invalid template"}`))
		}))
		defer srv.Close()

		gw := NewSMSIR(SMSIRConfig{APIKey: "KEY", TemplateID: 77, BaseURL: srv.URL})

		assert.Error(t, gw.Send(ctx, "+989123456789", "", "654321"))
	})
}

func TestMelipayamakSend(t *testing.T) {
	ctx := context.Background()

	soapResponse := func(result string) string {
		return `<?xml version="1.0" encoding="utf-8"?>
<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/">
  <soap:Body>
    <SendSimpleSMS2Response xmlns="http://tempuri.org/">
      <SendSimpleSMS2Result>` + result + `</SendSimpleSMS2Result>
    </SendSimpleSMS2Response>
  </soap:Body>
</soap:Envelope>`
	}

	t.Run("Success", func(t *testing.T) {
		var gotAction, gotBody string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAction = r.Header.Get("SOAPAction")
			body, _ := io.ReadAll(r.Body)
			gotBody = string(body)
			w.Write([]byte(soapResponse("15034718290167000001")))
		}))
		defer srv.Close()

		gw := NewMelipayamak(MelipayamakConfig{
			Username: "user", Password: "pass", Sender: "5000123", BaseURL: srv.URL,
		})
		err := gw.Send(ctx, "+989123456789", "Your verification code is 123456", "123456")

		assert.NoError(t, err)
		assert.Equal(t, "http://tempuri.org/SendSimpleSMS2", gotAction)
		assert.Contains(t, gotBody, "<to>+989123456789</to>")
		assert.Contains(t, gotBody, "<text>Your verification code is 123456</text>")
	})

	t.Run("ShortNumericErrorCode", func(t *testing.T) {
		// The provider signals failure with short numeric codes; only a
		// record id longer than 10 digits is a delivery receipt.
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(soapResponse("-7")))
		}))
		defer srv.Close()

		gw := NewMelipayamak(MelipayamakConfig{Username: "user", Password: "pass", BaseURL: srv.URL})

		assert.Error(t, gw.Send(ctx, "+989123456789", "msg", "123456"))
	})

	t.Run("TenDigitResultIsFailure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(soapResponse("1234567890")))
		}))
		defer srv.Close()

		gw := NewMelipayamak(MelipayamakConfig{Username: "user", Password: "pass", BaseURL: srv.URL})

		assert.Error(t, gw.Send(ctx, "+989123456789", "msg", "123456"))
	})
}

func TestFarazsmsSend(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		var gotForm url.Values
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseForm())
			gotForm = r.PostForm
			w.Write([]byte("0"))
		}))
		defer srv.Close()

		gw := NewFarazsms(FarazsmsConfig{
			Username: "user", Password: "pass", Sender: "3000123", BaseURL: srv.URL,
		})
		err := gw.Send(ctx, "+989123456789", "Your verification code is 123456", "123456")

		assert.NoError(t, err)
		assert.Equal(t, "user", gotForm.Get("uname"))
		assert.Equal(t, "+989123456789", gotForm.Get("to"))
		assert.Equal(t, "send", gotForm.Get("op"))
	})

	t.Run("SuccessWithWhitespace", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte("\n 0 \n"))
		}))
		defer srv.Close()

		gw := NewFarazsms(FarazsmsConfig{Username: "user", Password: "pass", BaseURL: srv.URL})

		assert.NoError(t, gw.Send(ctx, "+989123456789", "msg", "123456"))
	})

	t.Run("ErrorCode", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte("6"))
		}))
		defer srv.Close()

		gw := NewFarazsms(FarazsmsConfig{Username: "user", Password: "pass", BaseURL: srv.URL})

		assert.Error(t, gw.Send(ctx, "+989123456789", "msg", "123456"))
	})
}

func TestGhasedakSend(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		var gotKey string
		var gotForm url.Values
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotKey = r.Header.Get("apikey")
			require.NoError(t, r.ParseForm())
			gotForm = r.PostForm
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		gw := NewGhasedak(GhasedakConfig{APIKey: "KEY", Template: "login", BaseURL: srv.URL})
		err := gw.Send(ctx, "+989123456789", "ignored free text", "123456")

		assert.NoError(t, err)
		assert.Equal(t, "KEY", gotKey)
		assert.Equal(t, "+989123456789", gotForm.Get("receptor"))
		assert.Equal(t, "login", gotForm.Get("template"))
		assert.Equal(t, "123456", gotForm.Get("param1"))
	})

	t.Run("NonOKStatus", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			w.Write([]byte(`{"result":{"code":422}}`))
		}))
		defer srv.Close()

		gw := NewGhasedak(GhasedakConfig{APIKey: "KEY", Template: "login", BaseURL: srv.URL})

		assert.Error(t, gw.Send(ctx, "+989123456789", "", "123456"))
	})
}

func TestXMLEscape(t *testing.T) {
	assert.Equal(t, "a &amp; b &lt;c&gt;", xmlEscape("a & b <c>"))
}
