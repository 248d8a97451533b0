package usecase

import (
	"context"
	"sort"

	"VendorMap-App/internal/domain/model"
)

// InitialDataUseCase ダッシュボードの初期フィルタ候補を提供するユースケース
type InitialDataUseCase interface {
	// GetInitialData 都市・業態・エリア名などの選択肢一覧を返す
	GetInitialData(ctx context.Context) (*model.InitialDataResponse, error)
}

// initialDataUseCaseImpl InitialDataUseCaseの実装
type initialDataUseCaseImpl struct {
	dataset *model.Dataset
}

// NewInitialDataUseCase 新しいInitialDataUseCaseインスタンスを作成
func NewInitialDataUseCase(dataset *model.Dataset) InitialDataUseCase {
	return &initialDataUseCaseImpl{dataset: dataset}
}

// GetInitialData データセットから選択肢を集計して返す
func (u *initialDataUseCaseImpl) GetInitialData(ctx context.Context) (*model.InitialDataResponse, error) {
	if !u.dataset.IsReady() {
		return nil, ErrDataNotLoaded
	}

	cities := make([]model.CityInfo, 0, len(model.CityIDMap))
	for id, name := range model.CityIDMap {
		cities = append(cities, model.CityInfo{ID: id, Name: name})
	}
	sort.Slice(cities, func(i, j int) bool { return cities[i].ID < cities[j].ID })

	marketingAreas := make(map[string][]string, len(u.dataset.MarketingAreas))
	for cityName, polygons := range u.dataset.MarketingAreas {
		marketingAreas[cityName] = model.AreaNames(polygons)
	}

	return &model.InitialDataResponse{
		Cities:                cities,
		BusinessLines:         u.dataset.BusinessLines(),
		MarketingAreasByCity:  marketingAreas,
		TehranRegionDistricts: model.AreaNames(u.dataset.TehranRegion),
		TehranMainDistricts:   model.AreaNames(u.dataset.TehranMainDistricts),
		VendorStatuses:        u.dataset.VendorStatuses(),
		VendorGrades:          u.dataset.VendorGrades(),
	}, nil
}
