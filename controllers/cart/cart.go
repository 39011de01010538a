package cartController

import (
	"errors"

	"techtrek/middleware"
	"techtrek/services"

	"github.com/gofiber/fiber/v2"
)

type Controller struct {
	Cart *services.CartService
}

func New(cart *services.CartService) *Controller {
	return &Controller{Cart: cart}
}

func (ctl *Controller) CartPage(c *fiber.Ctx) error {
	token := middleware.CartToken(c, true)

	summary, err := ctl.Cart.Summary(c.UserContext(), token)
	if err != nil {
		return err
	}
	return middleware.Render(c, fiber.StatusOK, "cart", fiber.Map{
		"cart_items": summary.Items,
		"subtotal":   summary.Subtotal,
		"tax":        summary.Tax,
		"total":      summary.Total,
	})
}

func (ctl *Controller) AddToCart(c *fiber.Ctx) error {
	token := middleware.CartToken(c, true)
	reqData, ok := c.Locals("validatedAddToCart").(*services.AddToCartRequest)
	if !ok {
		return middleware.RedirectWithFlash(c, "/cart", middleware.FlashDanger, "Invalid form submission!")
	}

	added, err := ctl.Cart.AddItem(c.UserContext(), token, *reqData)
	switch {
	case err == nil && added:
		return middleware.RedirectWithFlash(c, "/cart", middleware.FlashSuccess, "Plan added to cart successfully")
	case err == nil:
		return middleware.RedirectWithFlash(c, "/cart", middleware.FlashInfo, "This plan is already in your cart")
	case errors.Is(err, services.ErrInvalidInput):
		return middleware.RedirectWithFlash(c, "/cart", middleware.FlashDanger, "Invalid plan selection!")
	default:
		return middleware.RedirectWithFlash(c, "/cart", middleware.FlashDanger, "An error occurred. Please try again.")
	}
}

// RemoveFromCart answers identically whether the item was removed or
// belongs to another session.
func (ctl *Controller) RemoveFromCart(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedRemoveFromCart").(*services.RemoveFromCartRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Item not found!", nil)
	}

	err := ctl.Cart.RemoveItem(c.UserContext(), middleware.CartToken(c, false), reqData.ItemID)
	switch {
	case err == nil:
		return middleware.RedirectWithFlash(c, "/cart", middleware.FlashInfo, "Item removed from cart")
	case errors.Is(err, services.ErrNotFound):
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Item not found!", nil)
	default:
		return middleware.RedirectWithFlash(c, "/cart", middleware.FlashDanger, "An error occurred. Please try again.")
	}
}

func (ctl *Controller) Checkout(c *fiber.Ctx) error {
	if err := ctl.Cart.Checkout(c.UserContext(), middleware.CartToken(c, false)); err != nil {
		return err
	}
	return middleware.RedirectWithFlash(c, "/cart", middleware.FlashInfo, "Checkout functionality will be implemented soon")
}
