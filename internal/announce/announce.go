// internal/announce/announce.go

// Package announce publishes channel-plan documents and resolution events
// over MQTT so radios and dashboards can pick up frequency assignments
// without polling the HTTP API.
package announce

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/signalsfoundry/meshfreq/core"
	"github.com/signalsfoundry/meshfreq/internal/config"
	"github.com/signalsfoundry/meshfreq/internal/logging"
)

// connectTimeout bounds the initial broker handshake. Connection failures
// are not fatal; the client retries in the background.
const connectTimeout = 5 * time.Second

// Publisher owns the MQTT client and the topic layout.
type Publisher struct {
	client  mqtt.Client
	cfg     config.MQTTConfig
	log     logging.Logger
	version string
}

// planDocument is the retained per-region channel plan.
type planDocument struct {
	Region      planRegion  `json:"region"`
	Channels    []planEntry `json:"channels"`
	GeneratedAt time.Time   `json:"generatedAt"`
	Version     string      `json:"version"`
}

type planRegion struct {
	Code        string  `json:"code"`
	Description string  `json:"description"`
	StartMhz    float64 `json:"startMhz"`
	EndMhz      float64 `json:"endMhz"`
}

type planEntry struct {
	Channel      string  `json:"channel"`
	BandwidthKhz int     `json:"bandwidthKhz"`
	SlotCount    int     `json:"slotCount"`
	SlotNumber   int     `json:"slotNumber"`
	FrequencyMhz float64 `json:"frequencyMhz"`
}

// resolutionEvent is the per-request event emitted when event publishing is
// enabled.
type resolutionEvent struct {
	Region       string    `json:"region"`
	Channel      string    `json:"channel"`
	BandwidthKhz int       `json:"bandwidthKhz"`
	SlotCount    int       `json:"slotCount"`
	SlotNumber   int       `json:"slotNumber"`
	FrequencyMhz float64   `json:"frequencyMhz"`
	ResolvedAt   time.Time `json:"resolvedAt"`
}

// newClientID returns a random MQTT client ID.
func newClientID() string {
	var b [8]byte
	rand.Read(b[:])
	return "meshfreq_" + hex.EncodeToString(b[:])
}

// New builds and connects the publisher. A disabled config returns
// (nil, nil); callers treat a nil Publisher as "announcements off". The
// initial connect is attempted with a timeout but a failure is only logged,
// auto-reconnect recovers in the background.
func New(cfg config.MQTTConfig, log logging.Logger, version string) (*Publisher, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	if log == nil {
		log = logging.Noop()
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(cfg.BrokerURL())
	opts.SetClientID(newClientID())

	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
	}
	if cfg.Password != "" {
		opts.SetPassword(cfg.Password)
	}

	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetConnectRetryInterval(10 * time.Second)
	opts.SetMaxReconnectInterval(60 * time.Second)
	opts.SetKeepAlive(60 * time.Second)
	opts.SetPingTimeout(10 * time.Second)
	opts.SetConnectTimeout(connectTimeout)

	opts.SetOnConnectHandler(func(mqtt.Client) {
		log.Info(context.Background(), "connected to MQTT broker",
			logging.String("broker", cfg.BrokerURL()))
	})
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		log.Warn(context.Background(), "MQTT connection lost, reconnecting",
			logging.Err(err))
	})

	p := &Publisher{
		client:  mqtt.NewClient(opts),
		cfg:     cfg,
		log:     log,
		version: version,
	}

	token := p.client.Connect()
	if token.WaitTimeout(connectTimeout) {
		if err := token.Error(); err != nil {
			log.Warn(context.Background(), "initial MQTT connect failed, retrying in background",
				logging.Err(err), logging.String("broker", cfg.BrokerURL()))
		}
	} else {
		log.Warn(context.Background(), "initial MQTT connect timed out, retrying in background",
			logging.String("broker", cfg.BrokerURL()))
	}

	return p, nil
}

// IsConnected reports whether the underlying client holds a live broker
// connection.
func (p *Publisher) IsConnected() bool {
	if p == nil || p.client == nil {
		return false
	}
	return p.client.IsConnected()
}

// Close disconnects from the broker, allowing in-flight messages a short
// grace period.
func (p *Publisher) Close() {
	if p == nil || p.client == nil {
		return
	}
	p.client.Disconnect(250)
}

// planTopic returns the retained plan topic for a region.
func (p *Publisher) planTopic(regionCode string) string {
	return fmt.Sprintf("%s/plan/%s", p.cfg.TopicPrefix, regionCode)
}

// resolutionTopic returns the event topic for a region.
func (p *Publisher) resolutionTopic(regionCode string) string {
	return fmt.Sprintf("%s/resolutions/%s", p.cfg.TopicPrefix, regionCode)
}

// planRegions returns the configured announcement regions, defaulting to
// the full catalog when none are named.
func (p *Publisher) planRegions() []string {
	if len(p.cfg.PlanRegions) > 0 {
		return p.cfg.PlanRegions
	}
	codes := make([]string, 0, len(core.Regions()))
	for _, band := range core.Regions() {
		codes = append(codes, band.Code)
	}
	return codes
}

// buildPlanDocument assembles the retained plan payload for one region.
func buildPlanDocument(band core.RegionBand, resolutions []core.Resolution, generatedAt time.Time, version string) planDocument {
	doc := planDocument{
		Region: planRegion{
			Code:        band.Code,
			Description: band.Description,
			StartMhz:    band.StartMHz,
			EndMhz:      band.EndMHz,
		},
		Channels:    make([]planEntry, 0, len(resolutions)),
		GeneratedAt: generatedAt,
		Version:     version,
	}
	for _, res := range resolutions {
		doc.Channels = append(doc.Channels, planEntry{
			Channel:      res.Channel,
			BandwidthKhz: res.BandwidthKHz,
			SlotCount:    res.SlotCount,
			SlotNumber:   res.SlotNumber(),
			FrequencyMhz: res.FrequencyMHz,
		})
	}
	return doc
}

// PublishPlans publishes one retained plan document per configured region.
// Individual publish failures are logged and do not stop the remaining
// regions.
func (p *Publisher) PublishPlans(ctx context.Context) error {
	if p == nil {
		return nil
	}

	generatedAt := time.Now().UTC()
	for _, code := range p.planRegions() {
		band, err := core.LookupRegion(code)
		if err != nil {
			p.log.Warn(ctx, "skipping plan for unknown region", logging.String("region", code))
			continue
		}
		resolutions, err := core.ResolvePresets(band.Code)
		if err != nil {
			p.log.Warn(ctx, "skipping plan for region",
				logging.String("region", band.Code), logging.Err(err))
			continue
		}

		doc := buildPlanDocument(band, resolutions, generatedAt, p.version)
		if err := p.publish(ctx, p.planTopic(band.Code), p.cfg.Retain, doc); err != nil {
			p.log.Warn(ctx, "failed to publish channel plan",
				logging.String("region", band.Code), logging.Err(err))
		}
	}
	return nil
}

// PublishResolution emits a resolution event when event publishing is
// enabled. Failures are logged, never surfaced to the serving path.
func (p *Publisher) PublishResolution(ctx context.Context, res core.Resolution) {
	if p == nil || !p.cfg.PublishEvents {
		return
	}

	event := resolutionEvent{
		Region:       res.Band.Code,
		Channel:      res.Channel,
		BandwidthKhz: res.BandwidthKHz,
		SlotCount:    res.SlotCount,
		SlotNumber:   res.SlotNumber(),
		FrequencyMhz: res.FrequencyMHz,
		ResolvedAt:   time.Now().UTC(),
	}
	if err := p.publish(ctx, p.resolutionTopic(res.Band.Code), false, event); err != nil {
		p.log.Warn(ctx, "failed to publish resolution event",
			logging.String("region", res.Band.Code), logging.Err(err))
	}
}

// publish marshals v and hands it to the client. The token is awaited in
// the background so callers never block on broker round-trips.
func (p *Publisher) publish(ctx context.Context, topic string, retain bool, v any) error {
	if !p.client.IsConnected() {
		return fmt.Errorf("MQTT client not connected")
	}

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	token := p.client.Publish(topic, p.cfg.QoS, retain, data)
	go func() {
		if token.Wait() && token.Error() != nil {
			p.log.Warn(ctx, "MQTT publish failed",
				logging.String("topic", topic), logging.Err(token.Error()))
		} else {
			p.log.Debug(ctx, "published MQTT message", logging.String("topic", topic))
		}
	}()

	return nil
}
