// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package telegrambot implements the TelegramBot reference component: it
// long-polls the Telegram Bot API for incoming messages, forwarding
// their text to OUT, and sends every IN packet as a message to the most
// recently seen chat.
package telegrambot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/flowd"
)

// apiEndpoint is the Bot API base URL, overridable in tests so they can
// point the component at a local fake server instead of api.telegram.org.
var apiEndpoint = tgbotapi.APIEndpoint

// Component is the TelegramBot reference implementation.
type Component struct {
	conf *flowd.Consumer
	in   *flowd.Consumer
	out  *flowd.Producer

	signalsIn  flowd.SignalSource
	signalsOut flowd.SignalSink

	name string
	log  flowd.SLogger
	park *flowd.Parker

	// chatID is the chat ID to reply to, updated every time an update
	// dispatcher goroutine observes an incoming message. Stored as the raw
	// bit pattern of an int64 since Telegram group chat IDs are negative.
	chatID atomix.Uint64
}

// New constructs TelegramBot from deps, draining its CONF/IN/OUT ports.
func New(deps flowd.Deps) (flowd.Component, error) {
	conf, ok := deps.Inports.Remove("CONF")
	if !ok {
		return nil, flowd.ErrConfigMissing
	}
	in, ok := deps.Inports.Remove("IN")
	if !ok {
		return nil, flowd.ErrConfigMissing
	}
	out, ok := deps.Outports.Remove("OUT")
	if !ok {
		return nil, flowd.ErrConfigMissing
	}
	log := deps.Log
	if log == nil {
		log = flowd.DefaultSLogger()
	}
	park := deps.Park
	if park == nil {
		park = flowd.NewParker()
	}
	return &Component{
		conf:       conf,
		in:         in,
		out:        out,
		signalsIn:  deps.SignalsIn,
		signalsOut: deps.SignalsOut,
		name:       deps.Name,
		log:        log,
		park:       park,
	}, nil
}

func (c *Component) setChatID(id int64) {
	c.chatID.Store(uint64(id))
}

func (c *Component) getChatID() int64 {
	return int64(c.chatID.Load())
}

// Run implements [flowd.Component].
func (c *Component) Run() {
	c.log.Debug("TelegramBot is now running")

	confIP, err := c.conf.Pop()
	if err != nil {
		c.log.Trace("no config IP received, exiting")
		return
	}
	token := string(confIP)

	bot, err := tgbotapi.NewBotAPIWithAPIEndpoint(token, apiEndpoint)
	if err != nil {
		c.log.Error("failed to create Telegram bot, exiting", "error", err)
		return
	}

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60
	updates := bot.GetUpdatesChan(updateConfig)

	// evName identifies this update dispatcher goroutine in log records,
	// mirroring the original runtime's "<parent>/EV" sub-thread name now
	// that Go goroutines have no queryable name of their own (SPEC_FULL §9(d)).
	evName := c.name + "/EV"

	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range updates {
			if update.Message == nil || update.Message.Text == "" {
				continue
			}
			c.setChatID(update.Message.Chat.ID)
			if _, err := c.out.Push([]byte(update.Message.Text)); err != nil {
				c.log.Error("could not push into OUT", "component", evName, "error", err)
			}
		}
	}()

	for {
		if sig, err := c.signalsIn.TryRecv(); err == nil {
			switch string(sig) {
			case flowd.SignalStop:
				c.log.Info("got stop signal, exiting")
				bot.StopReceivingUpdates()
				<-done
				c.out.Close()
				return
			case flowd.SignalPing:
				_ = c.signalsOut.Send([]byte(flowd.SignalPong))
			default:
				c.log.Warn("received unknown signal", "signal", string(sig))
			}
		}

		for {
			ip, err := c.in.Pop()
			if err != nil {
				break
			}
			chatID := c.getChatID()
			if chatID == 0 {
				c.log.Warn("no chat ID set, discarding IP")
				continue
			}
			msg := tgbotapi.NewMessage(chatID, string(ip))
			if _, err := bot.Send(msg); err != nil {
				c.log.Error("failed to send Telegram message", "error", err)
			}
		}

		if c.in.IsAbandoned() {
			c.log.Info("EOF on inport, shutting down")
			bot.StopReceivingUpdates()
			<-done
			c.out.Close()
			return
		}

		c.park.Park()
	}
}

// Metadata implements the component descriptor (§4.D "metadata").
func Metadata() flowd.ComponentDescriptor {
	return flowd.ComponentDescriptor{
		Name:        "main/TelegramBot",
		Description: "Reads messages from the Telegram Bot API, sends these into the OUT port and sends IN packets as replies into the most recently seen chat.",
		Icon:        "telegram",
		InPorts: []flowd.PortDescriptor{
			{Name: "CONF", AllowedType: "any", Required: true, Description: "the Telegram Bot API token"},
			{Name: "IN", AllowedType: "any", Required: true, Description: "response to be sent to the Telegram chat"},
		},
		OutPorts: []flowd.PortDescriptor{
			{Name: "OUT", AllowedType: "any", Required: true, Description: "messages from the Telegram chat"},
		},
	}
}
