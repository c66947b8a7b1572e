package application

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wyfcoding/pricingengine/internal/pricing/domain"
	"github.com/wyfcoding/pricingengine/pkg/config"
	"github.com/wyfcoding/pricingengine/pkg/logger"
	"github.com/wyfcoding/pricingengine/pkg/metrics"
)

// 结果金额保留的小数位数
const resultPrecision = 6

// PricingService 期权定价应用服务
// 负责命令校验、引擎参数裁剪与指标上报，数值计算全部委托领域层
type PricingService struct {
	cfg     config.EngineConfig
	metrics *metrics.Metrics
}

// NewPricingService 创建定价应用服务
func NewPricingService(cfg config.EngineConfig, m *metrics.Metrics) *PricingService {
	return &PricingService{cfg: cfg, metrics: m}
}

// PriceOption 期权定价：价格与全部希腊字母
func (s *PricingService) PriceOption(ctx context.Context, cmd PriceOptionCommand) (*PriceOptionResult, error) {
	model, err := domain.ParsePricingModel(cmd.Model)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	result, err := s.priceOption(ctx, model, cmd)
	s.observe(string(model), start, err)
	return result, err
}

func (s *PricingService) priceOption(ctx context.Context, model domain.PricingModel, cmd PriceOptionCommand) (*PriceOptionResult, error) {
	optionType, err := domain.ParseOptionType(cmd.OptionType)
	if err != nil {
		return nil, err
	}
	style, err := domain.ParseOptionStyle(cmd.OptionStyle)
	if err != nil {
		return nil, err
	}
	data, err := domain.NewMarketData(cmd.Spot, cmd.Strike, cmd.RiskFreeRate, cmd.Volatility, cmd.TimeToMaturity, cmd.DividendYield)
	if err != nil {
		return nil, err
	}

	params, err := s.modelParams(cmd)
	if err != nil {
		return nil, err
	}

	pricer, err := domain.NewPricer(model, data, optionType, style, params)
	if err != nil {
		return nil, err
	}

	// 蒙特卡洛附带标准误，其余模型只取价格
	var price, stdError float64
	if mc, ok := pricer.(*domain.MonteCarloPricer); ok {
		price, stdError, err = mc.PriceWithStdError()
	} else {
		price, err = pricer.Price()
	}
	if err != nil {
		return nil, err
	}

	greeks, err := pricer.CalculateGreeks()
	if err != nil {
		return nil, err
	}

	out := &PriceOptionResult{
		Model:  string(model),
		Price:  decimal.NewFromFloat(price).Round(resultPrecision),
		Greeks: toGreeksDTO(greeks),
	}
	if stdError > 0 {
		out.StdError = decimal.NewFromFloat(stdError).Round(resultPrecision)
	}

	logger.Debug(ctx, "option priced",
		"model", string(model),
		"type", string(optionType),
		"style", string(style),
		"price", price,
	)
	return out, nil
}

// ImpliedVolatility 由市场价反解隐含波动率
func (s *PricingService) ImpliedVolatility(ctx context.Context, cmd ImpliedVolCommand) (*ImpliedVolResult, error) {
	start := time.Now()
	result, err := s.impliedVolatility(ctx, cmd)
	s.observe("IMPLIED_VOL", start, err)
	return result, err
}

func (s *PricingService) impliedVolatility(ctx context.Context, cmd ImpliedVolCommand) (*ImpliedVolResult, error) {
	optionType, err := domain.ParseOptionType(cmd.OptionType)
	if err != nil {
		return nil, err
	}
	// 波动率是求解对象，这里用一个合法占位值通过市场数据校验
	data, err := domain.NewMarketData(cmd.Spot, cmd.Strike, cmd.RiskFreeRate, 0.5, cmd.TimeToMaturity, cmd.DividendYield)
	if err != nil {
		return nil, err
	}

	sigma, iterations, err := domain.SolveImpliedVolatility(data, optionType, cmd.MarketPrice)
	if s.metrics != nil {
		s.metrics.SolverIterations.WithLabelValues("implied_vol").Observe(float64(iterations))
	}
	if err != nil {
		return nil, err
	}

	logger.Debug(ctx, "implied volatility solved", "sigma", sigma, "iterations", iterations)
	return &ImpliedVolResult{
		ImpliedVolatility: decimal.NewFromFloat(sigma).Round(resultPrecision),
		Iterations:        iterations,
	}, nil
}

// modelParams 应用默认值并裁剪到配置上限
func (s *PricingService) modelParams(cmd PriceOptionCommand) (domain.ModelParams, error) {
	params := domain.ModelParams{
		NumSteps:       cmd.NumSteps,
		NumSimulations: cmd.NumSimulations,
		Seed:           cmd.Seed,
		Workers:        s.cfg.Workers,
	}
	if params.NumSteps < 0 {
		return params, fmt.Errorf("%w: numSteps must be >= 0, got %d", domain.ErrInvalidInput, params.NumSteps)
	}
	if params.NumSimulations < 0 {
		return params, fmt.Errorf("%w: numSimulations must be >= 0, got %d", domain.ErrInvalidInput, params.NumSimulations)
	}
	if params.NumSteps == 0 {
		params.NumSteps = s.cfg.DefaultSteps
	}
	if params.NumSimulations == 0 {
		params.NumSimulations = s.cfg.DefaultSimulations
	}
	if s.cfg.MaxSteps > 0 && params.NumSteps > s.cfg.MaxSteps {
		params.NumSteps = s.cfg.MaxSteps
	}
	if s.cfg.MaxSimulations > 0 && params.NumSimulations > s.cfg.MaxSimulations {
		params.NumSimulations = s.cfg.MaxSimulations
	}
	return params, nil
}

// observe 上报请求计数与耗时
func (s *PricingService) observe(model string, start time.Time, err error) {
	if s.metrics == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	s.metrics.PricingRequestsTotal.WithLabelValues(model, outcome).Inc()
	s.metrics.PricingDuration.WithLabelValues(model).Observe(time.Since(start).Seconds())
}
